package eventstore_test

import (
	"testing"
	"time"

	eventstore "github.com/communitycare/carehub/internal/app/store/events"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Event{
		Title:     "Crêpe Breakfast",
		Date:      time.Now().UTC().Add(48 * time.Hour),
		StartTime: "09:00",
		Location:  "Park Pavilion",
		CreatedBy: creator,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI != "crepe breakfast" {
		t.Errorf("TitleCI = %q, want folded title", created.TitleCI)
	}
	if created.ApprovalStatus.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", created.ApprovalStatus.Status, models.StatusPending)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Update_PartialMerge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Event{
		Title:       "Old Title",
		Date:        time.Now().UTC().Add(48 * time.Hour),
		Location:    "Old Location",
		Description: "Old description",
		CreatedBy:   primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "New Title"
	if err := store.Update(ctx, created.ID, eventstore.UpdateFields{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New Title" {
		t.Errorf("Title = %q, want %q", got.Title, "New Title")
	}
	if got.TitleCI != "new title" {
		t.Errorf("TitleCI = %q, want re-folded title", got.TitleCI)
	}
	// Fields not in the update must be untouched.
	if got.Location != "Old Location" {
		t.Errorf("Location = %q, want unchanged", got.Location)
	}
	if got.Description != "Old description" {
		t.Errorf("Description = %q, want unchanged", got.Description)
	}
}

func TestStore_SetApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Event{
		Title:     "Pending Event",
		Date:      time.Now().UTC().Add(48 * time.Hour),
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	decision := models.ApprovalStatus{Status: models.StatusRejected, Reason: "incomplete details"}
	if err := store.SetApproval(ctx, created.ID, decision); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ApprovalStatus.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q", got.ApprovalStatus.Status, models.StatusRejected)
	}
	if got.ApprovalStatus.Reason != "incomplete details" {
		t.Errorf("reason = %q, want stored", got.ApprovalStatus.Reason)
	}
}

func TestStore_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	approved := fixtures.CreateApprovedEvent(ctx, "Approved Upcoming", creator)
	pending := fixtures.CreatePendingEvent(ctx, "Pending One", creator)

	upcoming, err := store.ListUpcomingApproved(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("ListUpcomingApproved failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != approved.ID {
		t.Errorf("upcoming = %v, want only the approved event", upcoming)
	}

	queue, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != pending.ID {
		t.Errorf("pending = %v, want only the pending event", queue)
	}

	mine, err := store.ListByCreator(ctx, creator)
	if err != nil {
		t.Fatalf("ListByCreator failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("got %d events by creator, want 2", len(mine))
	}
}

func TestStore_ListByIDs_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out, err := store.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d events, want none for empty id list", len(out))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Event{
		Title:     "Doomed",
		Date:      time.Now().UTC().Add(48 * time.Hour),
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted %d on second call, want 0", n)
	}
}

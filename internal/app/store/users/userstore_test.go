package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/indexes"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Amélie Martin",
		Email:    "  Amelie@Example.COM ",
		Role:     models.RoleSeeker,
	}, "hunter2hunter2")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "amelie@example.com" {
		t.Errorf("Email = %q, want lowercased and trimmed", created.Email)
	}
	if created.FullNameCI != "amelie martin" {
		t.Errorf("FullNameCI = %q, want folded name", created.FullNameCI)
	}
	if created.ApprovalStatus.Status != models.StatusPending {
		t.Errorf("status = %q, want new accounts pending", created.ApprovalStatus.Status)
	}
	if created.Approved {
		t.Error("expected Approved to start false")
	}
	if created.PasswordHash == "" || created.PasswordHash == "hunter2hunter2" {
		t.Error("expected a bcrypt hash, not the plaintext")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := models.User{FullName: "First", Email: "dup@example.com", Role: models.RoleSeeker}
	if _, err := store.Create(ctx, u, "password123"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	u2 := models.User{FullName: "Second", Email: "DUP@example.com", Role: models.RoleSeeker}
	_, err := store.Create(ctx, u2, "password123")
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_CheckPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Pass User",
		Email:    "pass@example.com",
		Role:     models.RoleSeeker,
	}, "correct horse battery")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !store.CheckPassword(created, "correct horse battery") {
		t.Error("expected correct password to verify")
	}
	if store.CheckPassword(created, "wrong password") {
		t.Error("expected wrong password to fail")
	}
}

func TestStore_SetApproval_SyncsApprovedFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Pending User",
		Email:    "pending@example.com",
		Role:     models.RoleVolunteer,
	}, "password123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	approve := models.ApprovalStatus{Status: models.StatusApproved}
	if err := store.SetApproval(ctx, created.ID, approve); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Approved || got.ApprovalStatus.Status != models.StatusApproved {
		t.Errorf("approve: Approved=%v status=%q, want flag in sync", got.Approved, got.ApprovalStatus.Status)
	}

	reject := models.ApprovalStatus{Status: models.StatusRejected, Reason: "spam"}
	if err := store.SetApproval(ctx, created.ID, reject); err != nil {
		t.Fatalf("SetApproval failed: %v", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Approved || got.ApprovalStatus.Status != models.StatusRejected {
		t.Errorf("reject: Approved=%v status=%q, want flag in sync", got.Approved, got.ApprovalStatus.Status)
	}
}

func TestStore_ListPendingAndApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	approved := fixtures.CreateUser(ctx, "Approved User", "ok@example.com", models.RoleSeeker)
	pending := fixtures.CreatePendingUser(ctx, "Waiting User", "wait@example.com", models.RoleSeeker)

	queue, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != pending.ID {
		t.Errorf("pending queue = %v, want only the pending user", queue)
	}

	active, err := store.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != approved.ID {
		t.Errorf("approved list = %v, want only the approved user", active)
	}
}

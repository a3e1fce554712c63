package recommend_test

import (
	"testing"
	"time"

	"github.com/communitycare/carehub/internal/app/recommend"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/communitycare/carehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestSentimentAvg30d(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Journal User", "journal@example.com", models.RoleSeeker)

	// Two entries inside the window, one outside it.
	fixtures.CreateJournalEntry(ctx, user.ID, 1.0, 24*time.Hour)
	fixtures.CreateJournalEntry(ctx, user.ID, 0.5, 48*time.Hour)
	fixtures.CreateJournalEntry(ctx, user.ID, -1.0, 40*24*time.Hour)

	avg, err := engine.SentimentAvg30d(ctx, user.ID)
	if err != nil {
		t.Fatalf("SentimentAvg30d failed: %v", err)
	}
	if avg != 0.75 {
		t.Errorf("avg = %v, want 0.75 (old entry must be excluded)", avg)
	}
}

func TestSentimentAvg30d_NoHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	avg, err := engine.SentimentAvg30d(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("SentimentAvg30d failed: %v", err)
	}
	if avg != 0 {
		t.Errorf("avg = %v, want 0 for empty history", avg)
	}
}

func TestRecompute_NegativeMoodPicksSupportive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)

	supportive := fixtures.CreateScoredEvent(ctx, "Grief Support Circle", organizer.ID, 0.8)
	fixtures.CreateScoredEvent(ctx, "Beach Cleanup volunteer day", organizer.ID, 0.9)

	ids, err := engine.Recompute(ctx, user.ID, -0.5)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != supportive.ID {
		t.Fatalf("ids = %v, want exactly the supportive event %v", ids, supportive.ID)
	}

	// Snapshot must be persisted on the user document.
	stored, err := userstore.New(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.AI == nil {
		t.Fatal("expected AI snapshot to be persisted")
	}
	if stored.AI.JournalSentimentAvg30d != -0.5 {
		t.Errorf("snapshot sentiment = %v, want -0.5", stored.AI.JournalSentimentAvg30d)
	}
	if stored.AI.ComputedAt.IsZero() {
		t.Error("expected ComputedAt to be set")
	}
}

func TestRecompute_RanksByScoreDescending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)

	low := fixtures.CreateScoredEvent(ctx, "Support group A", organizer.ID, 0.1)
	high := fixtures.CreateScoredEvent(ctx, "Support group B", organizer.ID, 0.9)
	mid := fixtures.CreateScoredEvent(ctx, "Support group C", organizer.ID, 0.5)

	ids, err := engine.Recompute(ctx, user.ID, -0.5)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	want := []primitive.ObjectID{high.ID, mid.ID, low.ID}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %v, want %v", i, ids[i], want[i])
		}
	}
}

func TestRecompute_CapsAtFive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)

	for i := 0; i < 8; i++ {
		fixtures.CreateScoredEvent(ctx, "Mindfulness session", organizer.ID, float64(i)/10)
	}

	ids, err := engine.Recompute(ctx, user.ID, -0.5)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("got %d ids, want 5", len(ids))
	}
}

func TestRecompute_FallbackWhenBucketEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)

	// No supportive events exist; negative mood must fall back to the
	// recent approved events rather than returning nothing.
	fixtures.CreateApprovedEvent(ctx, "Sunday Picnic", organizer.ID)
	fixtures.CreateApprovedEvent(ctx, "Neighborhood Gathering", organizer.ID)

	ids, err := engine.Recompute(ctx, user.ID, -0.9)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2 fallback events", len(ids))
	}
}

func TestRecommendedEvents_SnapshotOrderAndDeletedDropOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)

	first := fixtures.CreateApprovedEvent(ctx, "First", organizer.ID)
	second := fixtures.CreateApprovedEvent(ctx, "Second", organizer.ID)
	ghost := primitive.NewObjectID() // never inserted

	snap := models.AISnapshot{
		RecommendedEventIDs: []primitive.ObjectID{second.ID, ghost, first.ID},
		ComputedAt:          time.Now().UTC(),
	}
	if err := users.SetAISnapshot(ctx, user.ID, snap); err != nil {
		t.Fatalf("SetAISnapshot failed: %v", err)
	}
	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}

	events, err := engine.RecommendedEvents(ctx, stored)
	if err != nil {
		t.Fatalf("RecommendedEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (missing id drops out)", len(events))
	}
	if events[0].ID != second.ID || events[1].ID != first.ID {
		t.Errorf("events out of snapshot order: got [%v %v]", events[0].ID, events[1].ID)
	}
}

func TestRecommendedEvents_NoSnapshotComputesOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := recommend.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fixtures.CreateUser(ctx, "Org", "org@example.com", models.RoleOrganizer)
	user := fixtures.CreateUser(ctx, "Seeker", "seeker@example.com", models.RoleSeeker)
	fixtures.CreateApprovedEvent(ctx, "Evening workshop", organizer.ID)

	events, err := engine.RecommendedEvents(ctx, user)
	if err != nil {
		t.Fatalf("RecommendedEvents failed: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected an on-the-fly recommendation for a user without a snapshot")
	}

	stored, err := userstore.New(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.AI == nil {
		t.Error("expected the computed snapshot to be persisted")
	}
}

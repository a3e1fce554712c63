package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an approved user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Email:          email,
		PasswordHash:   "x", // never checked by fixtures-based tests
		Role:           role,
		Approved:       true,
		ApprovalStatus: models.ApprovalStatus{Status: models.StatusApproved},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreatePendingUser creates a user still waiting on admin approval.
func (f *Fixtures) CreatePendingUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Email:          email,
		PasswordHash:   "x",
		Role:           role,
		ApprovalStatus: models.Pending(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateApprovedEvent creates an approved upcoming event.
func (f *Fixtures) CreateApprovedEvent(ctx context.Context, title string, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()
	return f.insertEvent(ctx, title, createdBy, models.ApprovalStatus{Status: models.StatusApproved}, 0)
}

// CreatePendingEvent creates an event awaiting admin review.
func (f *Fixtures) CreatePendingEvent(ctx context.Context, title string, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()
	return f.insertEvent(ctx, title, createdBy, models.Pending(), 0)
}

// CreateScoredEvent creates an approved event with a fixed sentiment score,
// for recommendation-ranking tests.
func (f *Fixtures) CreateScoredEvent(ctx context.Context, title string, createdBy primitive.ObjectID, score float64) models.Event {
	f.t.Helper()
	return f.insertEvent(ctx, title, createdBy, models.ApprovalStatus{Status: models.StatusApproved}, score)
}

func (f *Fixtures) insertEvent(ctx context.Context, title string, createdBy primitive.ObjectID, st models.ApprovalStatus, score float64) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Date:           now.Add(7 * 24 * time.Hour),
		StartTime:      "10:00",
		EndTime:        "12:00",
		Location:       "Community Center",
		Description:    "A test event",
		ApprovalStatus: st,
		SentimentScore: score,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreateOpportunity attaches an opportunity to an event and flips the
// event's needs_volunteers flag to keep the pair consistent.
func (f *Fixtures) CreateOpportunity(ctx context.Context, eventID, createdBy primitive.ObjectID, needed int) models.Opportunity {
	f.t.Helper()

	now := time.Now().UTC()
	o := models.Opportunity{
		ID:               primitive.NewObjectID(),
		EventID:          eventID,
		Title:            "Test Opportunity",
		VolunteersNeeded: needed,
		Description:      "Help out at a test event",
		Timings:          "10:00-12:00",
		ApprovalStatus:   models.ApprovalStatus{Status: models.StatusApproved},
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("opportunities").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}
	if _, err := f.db.Collection("events").UpdateByID(ctx, eventID,
		map[string]any{"$set": map[string]any{"needs_volunteers": true}}); err != nil {
		f.t.Fatalf("failed to flag event as needing volunteers: %v", err)
	}
	return o
}

// CreateJournalEntry inserts a journal entry with an explicit sentiment
// and age, for sentiment-window tests.
func (f *Fixtures) CreateJournalEntry(ctx context.Context, userID primitive.ObjectID, sentiment float64, age time.Duration) models.JournalEntry {
	f.t.Helper()

	e := models.JournalEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     "Test Entry",
		Body:      "test body",
		Sentiment: sentiment,
		CreatedAt: time.Now().UTC().Add(-age),
	}
	if _, err := f.db.Collection("journal_entries").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test journal entry: %v", err)
	}
	return e
}

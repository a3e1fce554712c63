// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Create inserts a new event in the Pending state. The ID, CI title,
// timestamps, and approval status are assigned here; callers supply the
// creator from their session.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.TitleCI = text.Fold(e.Title)
	e.ApprovalStatus = models.Pending()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// UpdateFields performs a partial merge: only the provided fields are set,
// unspecified fields are never replaced.
type UpdateFields struct {
	Title           *string
	Date            *time.Time
	StartTime       *string
	EndTime         *string
	Location        *string
	Description     *string
	NeedsVolunteers *bool
	SentimentScore  *float64
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Title != nil {
		set["title"] = *f.Title
		set["title_ci"] = text.Fold(*f.Title)
	}
	if f.Date != nil {
		set["date"] = f.Date.UTC()
	}
	if f.StartTime != nil {
		set["start_time"] = *f.StartTime
	}
	if f.EndTime != nil {
		set["end_time"] = *f.EndTime
	}
	if f.Location != nil {
		set["location"] = *f.Location
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.NeedsVolunteers != nil {
		set["needs_volunteers"] = *f.NeedsVolunteers
	}
	if f.SentimentScore != nil {
		set["sentiment_score"] = *f.SentimentScore
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SetApproval writes the approval decision. The caller is responsible for
// enforcing the Pending→Approved/Rejected state machine.
func (s *Store) SetApproval(ctx context.Context, id primitive.ObjectID, st models.ApprovalStatus) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"approval_status": st,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}

// Delete removes an event unconditionally. Cascade safety is the
// coordinator's concern, not the store's.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListUpcomingApproved returns approved events dated on or after `from`,
// soonest first.
func (s *Store) ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.Event, error) {
	return s.list(ctx, bson.M{
		"approval_status.status": models.StatusApproved,
		"date":                   bson.M{"$gte": from.UTC()},
	}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

// ListRecentApproved returns the most recently created approved events,
// newest first, capped at limit.
func (s *Store) ListRecentApproved(ctx context.Context, limit int64) ([]models.Event, error) {
	return s.list(ctx, bson.M{
		"approval_status.status": models.StatusApproved,
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
}

// ListPending returns events awaiting moderation, oldest first so admins
// work the queue in arrival order.
func (s *Store) ListPending(ctx context.Context) ([]models.Event, error) {
	return s.list(ctx, bson.M{
		"approval_status.status": models.StatusPending,
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// ListByCreator returns all events created by the given user, newest first.
func (s *Store) ListByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.list(ctx, bson.M{"created_by": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByIDs returns the events whose IDs appear in ids. Order is not
// preserved; callers that care re-order in memory.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (s *Store) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteer_applications")}
}

// Put writes an application under its deterministic composite key
// "<userID>_<opportunityID>". A second Put for the same pair replaces the
// first document instead of duplicating it, which makes the at-most-one
// invariant hold even under concurrent writers — in contrast to
// registrations, where dedup is query-then-insert.
func (s *Store) Put(ctx context.Context, a models.Application) (models.Application, error) {
	now := time.Now().UTC()
	a.ID = models.ApplicationID(a.UserID, a.OpportunityID)
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	a.AppliedAt = now
	a.UpdatedAt = now

	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": a.ID}, a,
		options.Replace().SetUpsert(true))
	if err != nil {
		return models.Application{}, err
	}
	return a, nil
}

// GetByID returns the application, or nil when none exists.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) SetAttendance(ctx context.Context, id, attendance string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"attendance": attendance,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListByOpportunity returns applications for one opportunity, newest first.
func (s *Store) ListByOpportunity(ctx context.Context, opportunityID primitive.ObjectID) ([]models.Application, error) {
	return s.list(ctx, bson.M{"opportunity_id": opportunityID})
}

// ListByUser returns all of a user's applications, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Application, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// DeleteByOpportunityIDs removes every application belonging to any of the
// given opportunities. Used by the event deletion cascade.
func (s *Store) DeleteByOpportunityIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"opportunity_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

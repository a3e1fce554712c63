// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// Create inserts a registration with a generated ID and confirmation code.
// The store does not check for an existing (user, event) registration;
// dedup is the coordinator's query-then-insert, so there is deliberately
// no unique index backing this collection.
func (s *Store) Create(ctx context.Context, r models.Registration) (models.Registration, error) {
	r.ID = primitive.NewObjectID()
	r.ConfirmationCode = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Registration{}, err
	}
	return r, nil
}

// Exists reports whether the user already has a registration for the event.
func (s *Store) Exists(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByEventAndUser returns the first matching registration, or nil.
func (s *Store) FindByEventAndUser(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Registration, error) {
	var r models.Registration
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByUser returns the user's registrations, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// ListByEvent returns the attendee list for an event, oldest first.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one registration by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEventID removes every registration for an event. Used by the
// event deletion cascade.
func (s *Store) DeleteByEventID(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

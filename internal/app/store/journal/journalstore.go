// internal/app/store/journal/journalstore.go
package journalstore

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
	return &Store{c: db.Collection("journal_entries")}
}

func (s *Store) Create(ctx context.Context, e models.JournalEntry) (models.JournalEntry, error) {
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JournalEntry, error) {
	var e models.JournalEntry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

// ListRecentByUser returns the user's entries created at or after `since`,
// newest first, capped at limit. The recommendation recompute reads the
// last 30 days with a cap of 50.
func (s *Store) ListRecentByUser(ctx context.Context, userID primitive.ObjectID, since time.Time, limit int64) ([]models.JournalEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since.UTC()},
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JournalEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all of the user's entries, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.JournalEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JournalEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an entry only when it belongs to the given user; journal
// entries are strictly user-owned.
func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

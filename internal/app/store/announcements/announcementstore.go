// internal/app/store/announcements/announcementstore.go
package announcementstore

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
	return &Store{c: db.Collection("announcements")}
}

func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// ListActive returns active announcements, newest first.
func (s *Store) ListActive(ctx context.Context) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Announcement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

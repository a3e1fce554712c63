// internal/domain/models/journal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a private journaling entry. Strictly user-owned; no
// cross-entity relationships.
type JournalEntry struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title  string             `bson:"title" json:"title"`
	Body   string             `bson:"body" json:"body"`

	// Sentiment is the lexicon score of title+body, computed on create and
	// averaged by the recommendation recompute.
	Sentiment float64 `bson:"sentiment" json:"sentiment"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

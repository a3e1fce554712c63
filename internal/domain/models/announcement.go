// internal/domain/models/announcement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a broadcast message shown to all clients, written as a
// best-effort side effect of admin actions (e.g. event approval). Failure
// to write one never fails the action that triggered it.
type Announcement struct {
	ID      primitive.ObjectID  `bson:"_id" json:"id"`
	Title   string              `bson:"title" json:"title"`
	Body    string              `bson:"body" json:"body"`
	EventID *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	Active  bool                `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled community activity, optionally requiring volunteers.
//
// NOTE:
//   - Registrations are not embedded on Event; reverse lookups go through
//     the registrations collection filtered by event_id.
//   - When NeedsVolunteers is true the event has exactly one opportunity
//     in the opportunities collection, keyed back by event_id.
type Event struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Date        time.Time          `bson:"date" json:"date"`
	StartTime   string             `bson:"start_time" json:"start_time"`
	EndTime     string             `bson:"end_time" json:"end_time"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`

	NeedsVolunteers bool           `bson:"needs_volunteers" json:"needs_volunteers"`
	ApprovalStatus  ApprovalStatus `bson:"approval_status" json:"approval_status"`

	// SentimentScore is a lexicon score over title+description, used by the
	// recommendation ranking. Recomputed on create and update.
	SentimentScore float64 `bson:"sentiment_score" json:"-"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// EventView is an Event annotated with caller-specific derived state.
// Registered is merged in memory from the caller's registration set.
type EventView struct {
	Event
	Registered bool `json:"registered"`
}

// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration is a general attendee's signup for an event, distinct from
// volunteering. At most one registration should exist per (user, event);
// this is enforced by a query-then-insert in the coordinator, not by a
// unique index, so concurrent signups can still race (a documented
// limitation carried over from the original workflow).
type Registration struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`

	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`

	// ConfirmationCode is shown to the attendee for check-in at the door.
	ConfirmationCode string `bson:"confirmation_code" json:"confirmation_code"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

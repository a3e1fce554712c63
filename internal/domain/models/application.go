// internal/domain/models/application.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application status values. The initial status is lowercase and the
// decided states are title-cased; these exact strings are part of the
// document contract with the mobile clients.
const (
	ApplicationPending     = "pending"
	ApplicationSelected    = "Selected"
	ApplicationNotSelected = "Not Selected"
)

// Attendance values. Only meaningful once the application is Selected.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// Application is a volunteer's request to fill an opportunity.
//
// The document ID is the deterministic composite "<userID>_<opportunityID>",
// which makes duplicate applications impossible even under concurrent
// writes: a second create for the same pair overwrites the same key.
type Application struct {
	ID            string             `bson:"_id" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	OpportunityID primitive.ObjectID `bson:"opportunity_id" json:"opportunity_id"`
	Status        string             `bson:"status" json:"status"`
	Attendance    string             `bson:"attendance,omitempty" json:"attendance,omitempty"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`

	// ExperienceDays is the applicant's account age in days at apply time.
	ExperienceDays int `bson:"experience_days" json:"experience_days"`

	AppliedAt time.Time `bson:"applied_at" json:"applied_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ApplicationID builds the deterministic composite key for a
// (user, opportunity) pair.
func ApplicationID(userID, opportunityID primitive.ObjectID) string {
	return fmt.Sprintf("%s_%s", userID.Hex(), opportunityID.Hex())
}

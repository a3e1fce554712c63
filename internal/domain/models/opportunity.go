// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity is the volunteer-facing role definition attached 1:1 to an
// event that needs volunteers. It exists if and only if its parent event
// has needs_volunteers=true and has not been deleted, and its approval
// state mirrors the parent event's transitions.
type Opportunity struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	EventID            primitive.ObjectID `bson:"event_id" json:"event_id"`
	Title              string             `bson:"title" json:"title"`
	VolunteersNeeded   int                `bson:"volunteers_needed" json:"volunteers_needed"`
	Description        string             `bson:"description" json:"description"`
	Timings            string             `bson:"timings" json:"timings"`
	Location           string             `bson:"location,omitempty" json:"location,omitempty"`
	Rewards            string             `bson:"rewards,omitempty" json:"rewards,omitempty"`
	Refreshments       string             `bson:"refreshments,omitempty" json:"refreshments,omitempty"`
	ApprovalStatus     ApprovalStatus     `bson:"approval_status" json:"approval_status"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// OpportunityView is an Opportunity annotated with the caller's application
// status ("" when the caller has not applied), merged in memory.
type OpportunityView struct {
	Opportunity
	ApplicationStatus string `json:"application_status,omitempty"`
}

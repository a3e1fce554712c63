// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role and approval are admin-owned; profile fields are
// self-owned.
const (
	RoleSeeker     = "Support Seeker"
	RoleVolunteer  = "Volunteer"
	RoleOrganizer  = "Event Organizer"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

// User represents every account in the system regardless of role.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	PhoneNumber  string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`

	Role           string         `bson:"role" json:"role"`
	Approved       bool           `bson:"approved" json:"approved"`
	ApprovalStatus ApprovalStatus `bson:"approval_status" json:"approval_status"`

	ProfileImage string `bson:"profile_image,omitempty" json:"profile_image,omitempty"`

	// AI holds the batch-recomputed recommendation snapshot. Stale until the
	// next recompute; readers must not treat it as live state.
	AI *AISnapshot `bson:"ai,omitempty" json:"ai,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AISnapshot is the per-user derived state written by the recommendation
// recompute: the 30-day journal sentiment average and the ranked event IDs.
type AISnapshot struct {
	JournalSentimentAvg30d float64              `bson:"journal_sentiment_avg_30d" json:"journal_sentiment_avg_30d"`
	RecommendedEventIDs    []primitive.ObjectID `bson:"recommended_event_ids" json:"recommended_event_ids"`
	ComputedAt             time.Time            `bson:"computed_at" json:"computed_at"`
}

// internal/app/coordinator/coordinator.go
package coordinator

import (
	"context"
	"errors"

	announcementstore "github.com/communitycare/carehub/internal/app/store/announcements"
	applicationstore "github.com/communitycare/carehub/internal/app/store/applications"
	eventstore "github.com/communitycare/carehub/internal/app/store/events"
	journalstore "github.com/communitycare/carehub/internal/app/store/journal"
	opportunitystore "github.com/communitycare/carehub/internal/app/store/opportunities"
	registrationstore "github.com/communitycare/carehub/internal/app/store/registrations"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Coordinator enforces the cross-entity invariants that span the stores:
// approval cascades, deletion cascades, registration/application dedup, and
// the derived-state merges the mobile clients render. Stores stay pure
// CRUD; everything multi-collection lives here.
//
// Cascades are ordered and best-effort, not transactional: a failure mid
// cascade leaves the earlier steps committed (no compensation), which can
// orphan applications or registrations. This is a known limitation carried
// over from the original workflow.
type Coordinator struct {
	Events        *eventstore.Store
	Opportunities *opportunitystore.Store
	Applications  *applicationstore.Store
	Registrations *registrationstore.Store
	Users         *userstore.Store
	Journal       *journalstore.Store
	Announcements *announcementstore.Store

	// Broadcaster delivers best-effort notifications. Its failures are
	// logged and swallowed; they never fail or roll back the primary
	// state change.
	Broadcaster Broadcaster

	Log *zap.Logger
}

// Broadcaster is the notification side-effect surface. Implementations
// must be safe to call concurrently.
type Broadcaster interface {
	EventApproved(ctx context.Context, event models.Event) error
	EventRejected(ctx context.Context, event models.Event, reason string) error
}

var (
	ErrAlreadyDecided   = errors.New("approval status is already decided and cannot change")
	ErrReasonRequired   = errors.New("a rejection reason is required")
	ErrInvalidStatus    = errors.New("invalid application status")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotDecidable     = errors.New("application status can only change while pending")
	ErrNotSelected      = errors.New("attendance can only be set on a selected application")
	ErrInvalidAttendance = errors.New("invalid attendance value")
	ErrNoVolunteersNeeded = errors.New("event does not need volunteers")
)

// New wires a Coordinator over a single database handle.
func New(db *mongo.Database, b Broadcaster, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		Events:        eventstore.New(db),
		Opportunities: opportunitystore.New(db),
		Applications:  applicationstore.New(db),
		Registrations: registrationstore.New(db),
		Users:         userstore.New(db),
		Journal:       journalstore.New(db),
		Announcements: announcementstore.New(db),
		Broadcaster:   b,
		Log:           logger,
	}
}

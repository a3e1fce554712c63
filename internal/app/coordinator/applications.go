// internal/app/coordinator/applications.go
package coordinator

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplyForOpportunity records a volunteer's application. The document key
// is the deterministic "<userID>_<opportunityID>" composite, so applying
// twice — even concurrently — yields exactly one application: the second
// write overwrites the same key instead of duplicating it.
func (c *Coordinator) ApplyForOpportunity(ctx context.Context, user models.User, opportunityID primitive.ObjectID, message string) (models.Application, error) {
	if _, err := c.Opportunities.GetByID(ctx, opportunityID); err != nil {
		return models.Application{}, err
	}

	experience := int(time.Since(user.CreatedAt).Hours() / 24)
	if experience < 0 {
		experience = 0
	}

	return c.Applications.Put(ctx, models.Application{
		UserID:         user.ID,
		OpportunityID:  opportunityID,
		Status:         models.ApplicationPending,
		Message:        sanitize.Text(message),
		ExperienceDays: experience,
	})
}

// UpdateApplicationStatus moves an application out of pending.
// Valid transitions: pending→Selected, pending→"Not Selected". Decided
// applications cannot change again.
func (c *Coordinator) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	if status != models.ApplicationSelected && status != models.ApplicationNotSelected {
		return ErrInvalidStatus
	}

	app, err := c.Applications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		return ErrNotDecidable
	}
	return c.Applications.SetStatus(ctx, id, status)
}

// UpdateAttendance marks a selected volunteer Present or Absent.
// Attendance is independent of status but only meaningful once the
// application is Selected.
func (c *Coordinator) UpdateAttendance(ctx context.Context, id, attendance string) error {
	if attendance != models.AttendancePresent && attendance != models.AttendanceAbsent {
		return ErrInvalidAttendance
	}

	app, err := c.Applications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	if app.Status != models.ApplicationSelected {
		return ErrNotSelected
	}
	return c.Applications.SetAttendance(ctx, id, attendance)
}

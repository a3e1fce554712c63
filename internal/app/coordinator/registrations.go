// internal/app/coordinator/registrations.go
package coordinator

import (
	"context"

	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterForEvent signs a user up as a general attendee. Returns true
// when a registration was created, false when one already existed.
//
// Dedup is query-then-insert: two concurrent calls can both pass the
// existence check and create duplicates, because the collection carries no
// unique constraint. Sequential calls are safe. This race is documented
// behavior, not something to fix silently here — the durable fix is a
// deterministic key like applications use.
func (c *Coordinator) RegisterForEvent(ctx context.Context, user models.User, eventID primitive.ObjectID, phone string) (bool, error) {
	exists, err := c.Registrations.Exists(ctx, eventID, user.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if phone == "" {
		phone = user.PhoneNumber
	}
	_, err = c.Registrations.Create(ctx, models.Registration{
		EventID: eventID,
		UserID:  user.ID,
		Name:    user.FullName,
		Email:   user.Email,
		Phone:   phone,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// CancelRegistration removes the user's registration for an event.
// Returns true when one was found and deleted, false when there was none.
func (c *Coordinator) CancelRegistration(ctx context.Context, userID, eventID primitive.ObjectID) (bool, error) {
	reg, err := c.Registrations.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return false, err
	}
	if reg == nil {
		return false, nil
	}
	n, err := c.Registrations.Delete(ctx, reg.ID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UserRegistrations returns all of the user's registrations, newest first.
func (c *Coordinator) UserRegistrations(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	return c.Registrations.ListByUser(ctx, userID)
}

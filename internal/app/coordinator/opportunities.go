// internal/app/coordinator/opportunities.go
package coordinator

import (
	"context"

	opportunitystore "github.com/communitycare/carehub/internal/app/store/opportunities"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateOpportunityInput carries organizer-supplied opportunity fields for
// an event that was created without one.
type CreateOpportunityInput struct {
	EventID          primitive.ObjectID
	Title            string
	VolunteersNeeded int
	Description      string
	Timings          string
	Location         string
	Rewards          string
	Refreshments     string
}

// CreateOpportunity attaches an opportunity to an existing event. The
// parent event must need volunteers; the unique event_id index rejects a
// second opportunity for the same event.
func (c *Coordinator) CreateOpportunity(ctx context.Context, createdBy primitive.ObjectID, in CreateOpportunityInput) (models.Opportunity, error) {
	event, err := c.Events.GetByID(ctx, in.EventID)
	if err != nil {
		return models.Opportunity{}, err
	}
	if !event.NeedsVolunteers {
		return models.Opportunity{}, ErrNoVolunteersNeeded
	}

	title := in.Title
	if title == "" {
		title = event.Title
	}
	return c.Opportunities.Create(ctx, models.Opportunity{
		EventID:          event.ID,
		Title:            sanitize.Text(title),
		VolunteersNeeded: in.VolunteersNeeded,
		Description:      sanitize.Text(in.Description),
		Timings:          in.Timings,
		Location:         in.Location,
		Rewards:          in.Rewards,
		Refreshments:     in.Refreshments,
		CreatedBy:        createdBy,
	})
}

// UpdateOpportunity merges partial changes onto an opportunity.
func (c *Coordinator) UpdateOpportunity(ctx context.Context, id primitive.ObjectID, f opportunitystore.UpdateFields) error {
	if f.Description != nil {
		clean := sanitize.Text(*f.Description)
		f.Description = &clean
	}
	return c.Opportunities.Update(ctx, id, f)
}

// OpportunityByEventID returns the opportunity linked to an event, or nil
// when the event has none — a normal answer, not an error.
func (c *Coordinator) OpportunityByEventID(ctx context.Context, eventID primitive.ObjectID) (*models.Opportunity, error) {
	return c.Opportunities.GetByEventID(ctx, eventID)
}

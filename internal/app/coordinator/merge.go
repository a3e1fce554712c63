// internal/app/coordinator/merge.go
package coordinator

import (
	"context"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListEventsForUser returns upcoming approved events annotated with the
// caller's registered flag. The user's registration set is fetched once
// and joined in memory rather than per-event, so list rendering costs two
// queries regardless of list length.
func (c *Coordinator) ListEventsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventView, error) {
	events, err := c.Events.ListUpcomingApproved(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	regs, err := c.Registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	registered := make(map[primitive.ObjectID]struct{}, len(regs))
	for _, r := range regs {
		registered[r.EventID] = struct{}{}
	}

	views := make([]models.EventView, 0, len(events))
	for _, e := range events {
		_, ok := registered[e.ID]
		views = append(views, models.EventView{Event: e, Registered: ok})
	}
	return views, nil
}

// ListOpportunitiesForUser returns approved opportunities annotated with
// the caller's application status, using the same fetch-once in-memory
// join as ListEventsForUser.
func (c *Coordinator) ListOpportunitiesForUser(ctx context.Context, userID primitive.ObjectID) ([]models.OpportunityView, error) {
	opps, err := c.Opportunities.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	apps, err := c.Applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	statusByOpp := make(map[primitive.ObjectID]string, len(apps))
	for _, a := range apps {
		statusByOpp[a.OpportunityID] = a.Status
	}

	views := make([]models.OpportunityView, 0, len(opps))
	for _, o := range opps {
		views = append(views, models.OpportunityView{
			Opportunity:       o,
			ApplicationStatus: statusByOpp[o.ID],
		})
	}
	return views, nil
}

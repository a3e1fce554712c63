// internal/app/coordinator/events.go
package coordinator

import (
	"context"
	"time"

	eventstore "github.com/communitycare/carehub/internal/app/store/events"
	"github.com/communitycare/carehub/internal/app/recommend"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CreateEventInput carries the organizer-supplied event fields.
type CreateEventInput struct {
	Title           string
	Date            time.Time
	StartTime       string
	EndTime         string
	Location        string
	Description     string
	NeedsVolunteers bool

	// Opportunity fields, used only when NeedsVolunteers is set.
	VolunteersNeeded        int
	OpportunityDescription  string
	OpportunityTimings      string
	OpportunityRewards      string
	OpportunityRefreshments string
}

// CreateEvent creates a pending event and, when it needs volunteers, its
// 1:1 opportunity. The opportunity invariant (exists iff needs_volunteers
// and parent not deleted) starts holding here.
func (c *Coordinator) CreateEvent(ctx context.Context, createdBy primitive.ObjectID, in CreateEventInput) (models.Event, *models.Opportunity, error) {
	desc := sanitize.Text(in.Description)
	event, err := c.Events.Create(ctx, models.Event{
		Title:           sanitize.Text(in.Title),
		Date:            in.Date.UTC(),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Location:        in.Location,
		Description:     desc,
		NeedsVolunteers: in.NeedsVolunteers,
		SentimentScore:  recommend.Score(in.Title + " " + desc),
		CreatedBy:       createdBy,
	})
	if err != nil {
		return models.Event{}, nil, err
	}

	if !in.NeedsVolunteers {
		return event, nil, nil
	}

	oppDesc := in.OpportunityDescription
	if oppDesc == "" {
		oppDesc = desc
	}
	timings := in.OpportunityTimings
	if timings == "" {
		timings = in.StartTime + " - " + in.EndTime
	}
	opp, err := c.Opportunities.Create(ctx, models.Opportunity{
		EventID:          event.ID,
		Title:            event.Title,
		VolunteersNeeded: in.VolunteersNeeded,
		Description:      sanitize.Text(oppDesc),
		Timings:          timings,
		Location:         in.Location,
		Rewards:          in.OpportunityRewards,
		Refreshments:     in.OpportunityRefreshments,
		CreatedBy:        createdBy,
	})
	if err != nil {
		// The event is already committed; surface the error rather than
		// unwinding it. The organizer can retry opportunity creation.
		return event, nil, err
	}
	return event, &opp, nil
}

// UpdateEvent merges partial changes onto an event, keeping the stored
// sentiment score in step when title or description change.
func (c *Coordinator) UpdateEvent(ctx context.Context, id primitive.ObjectID, f eventstore.UpdateFields) error {
	if f.Description != nil {
		clean := sanitize.Text(*f.Description)
		f.Description = &clean
	}
	if f.Title != nil || f.Description != nil {
		current, err := c.Events.GetByID(ctx, id)
		if err != nil {
			return err
		}
		title := current.Title
		if f.Title != nil {
			title = *f.Title
		}
		desc := current.Description
		if f.Description != nil {
			desc = *f.Description
		}
		score := recommend.Score(title + " " + desc)
		f.SentimentScore = &score
	}
	return c.Events.Update(ctx, id, f)
}

// ApproveEvent sets the event Approved and mirrors the decision onto its
// opportunity, if one exists. The broadcast side effect is isolated: its
// failure is logged, never propagated.
//
// Pending→Approved is terminal; approving an already-decided event fails
// with ErrAlreadyDecided.
func (c *Coordinator) ApproveEvent(ctx context.Context, id primitive.ObjectID) error {
	return c.decideEvent(ctx, id, models.ApprovalStatus{Status: models.StatusApproved})
}

// RejectEvent is symmetric to ApproveEvent and requires a reason string.
func (c *Coordinator) RejectEvent(ctx context.Context, id primitive.ObjectID, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	return c.decideEvent(ctx, id, models.ApprovalStatus{Status: models.StatusRejected, Reason: reason})
}

func (c *Coordinator) decideEvent(ctx context.Context, id primitive.ObjectID, decision models.ApprovalStatus) error {
	event, err := c.Events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.ApprovalStatus.IsTerminal() {
		return ErrAlreadyDecided
	}

	if err := c.Events.SetApproval(ctx, id, decision); err != nil {
		return err
	}
	event.ApprovalStatus = decision

	// Mirror onto the linked opportunity (at most one expected).
	opp, err := c.Opportunities.GetByEventID(ctx, id)
	if err != nil {
		return err
	}
	if opp != nil {
		if err := c.Opportunities.SetApproval(ctx, opp.ID, decision); err != nil {
			return err
		}
	}

	c.broadcastDecision(ctx, event, decision)
	return nil
}

// broadcastDecision fires the notification side effect. Partial-failure
// semantics: the approval has already committed, so failures here are
// logged and dropped.
func (c *Coordinator) broadcastDecision(ctx context.Context, event models.Event, decision models.ApprovalStatus) {
	if c.Broadcaster == nil {
		return
	}
	var err error
	switch decision.Status {
	case models.StatusApproved:
		err = c.Broadcaster.EventApproved(ctx, event)
	case models.StatusRejected:
		err = c.Broadcaster.EventRejected(ctx, event, decision.Reason)
	}
	if err != nil {
		c.Log.Warn("event decision broadcast failed",
			zap.String("event_id", event.ID.Hex()),
			zap.String("status", decision.Status),
			zap.Error(err))
	}
}

// DeleteEventCascade removes an event and everything referencing it:
//
//	1. the event document
//	2. its opportunities (capturing their IDs)
//	3. all applications for those opportunities
//	4. all registrations for the event
//
// Steps run in this order to minimize dangling references, but they are
// independent and non-transactional: if a step fails, the earlier steps
// stay committed and the caller sees a single error with no indication of
// which steps succeeded. A crash mid-cascade can leave orphaned
// applications or registrations.
func (c *Coordinator) DeleteEventCascade(ctx context.Context, id primitive.ObjectID) error {
	if _, err := c.Events.Delete(ctx, id); err != nil {
		return err
	}

	oppIDs, err := c.Opportunities.DeleteByEventID(ctx, id)
	if err != nil {
		return err
	}

	apps, err := c.Applications.DeleteByOpportunityIDs(ctx, oppIDs)
	if err != nil {
		return err
	}

	regs, err := c.Registrations.DeleteByEventID(ctx, id)
	if err != nil {
		return err
	}

	c.Log.Info("event cascade deleted",
		zap.String("event_id", id.Hex()),
		zap.Int("opportunities", len(oppIDs)),
		zap.Int64("applications", apps),
		zap.Int64("registrations", regs))
	return nil
}

// Package events exposes the event endpoints: browse with registration
// state merged in, organizer CRUD, and the admin approval queue.
package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/coordinator"
	eventstore "github.com/communitycare/carehub/internal/app/store/events"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/app/system/webapi"
	"github.com/communitycare/carehub/internal/domain/models"
)

type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// canManage reports whether the caller may modify the given event:
// admins always, organizers only for events they created.
func canManage(r *http.Request, e models.Event) bool {
	if authz.IsAdmin(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	return ok && e.CreatedBy == uid
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	views, err := h.Coord.ListEventsForUser(r.Context(), uid)
	if err != nil {
		h.Log.Error("events: list", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load events")
		return
	}
	webapi.JSON(w, http.StatusOK, views)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	evts, err := h.Coord.Events.ListByCreator(r.Context(), uid)
	if err != nil {
		h.Log.Error("events: list mine", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load events")
		return
	}
	webapi.JSON(w, http.StatusOK, evts)
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	evts, err := h.Coord.Events.ListPending(r.Context())
	if err != nil {
		h.Log.Error("events: list pending", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load events")
		return
	}
	webapi.JSON(w, http.StatusOK, evts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	e, err := h.Coord.Events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("events: get", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load event")
		return
	}
	webapi.JSON(w, http.StatusOK, e)
}

type createPayload struct {
	Title           string    `json:"title" validate:"required,min=2,max=200"`
	Date            time.Time `json:"date" validate:"required"`
	StartTime       string    `json:"start_time" validate:"required,max=16"`
	EndTime         string    `json:"end_time" validate:"omitempty,max=16"`
	Location        string    `json:"location" validate:"required,max=300"`
	Description     string    `json:"description" validate:"omitempty,max=5000"`
	NeedsVolunteers bool      `json:"needs_volunteers"`

	VolunteersNeeded        int    `json:"volunteers_needed" validate:"omitempty,min=1,max=10000"`
	OpportunityDescription  string `json:"opportunity_description" validate:"omitempty,max=5000"`
	OpportunityTimings      string `json:"opportunity_timings" validate:"omitempty,max=300"`
	OpportunityRewards      string `json:"opportunity_rewards" validate:"omitempty,max=300"`
	OpportunityRefreshments string `json:"opportunity_refreshments" validate:"omitempty,max=300"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	var p createPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	event, opp, err := h.Coord.CreateEvent(r.Context(), uid, coordinator.CreateEventInput{
		Title:                   p.Title,
		Date:                    p.Date,
		StartTime:               p.StartTime,
		EndTime:                 p.EndTime,
		Location:                p.Location,
		Description:             p.Description,
		NeedsVolunteers:         p.NeedsVolunteers,
		VolunteersNeeded:        p.VolunteersNeeded,
		OpportunityDescription:  p.OpportunityDescription,
		OpportunityTimings:      p.OpportunityTimings,
		OpportunityRewards:      p.OpportunityRewards,
		OpportunityRefreshments: p.OpportunityRefreshments,
	})
	if err != nil {
		h.Log.Error("events: create", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not create event")
		return
	}
	webapi.JSON(w, http.StatusCreated, map[string]any{"event": event, "opportunity": opp})
}

type updatePayload struct {
	Title           *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Date            *time.Time `json:"date"`
	StartTime       *string    `json:"start_time" validate:"omitempty,max=16"`
	EndTime         *string    `json:"end_time" validate:"omitempty,max=16"`
	Location        *string    `json:"location" validate:"omitempty,max=300"`
	Description     *string    `json:"description" validate:"omitempty,max=5000"`
	NeedsVolunteers *bool      `json:"needs_volunteers"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var p updatePayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.Coord.Events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("events: load for update", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update event")
		return
	}
	if !canManage(r, e) {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}

	if p.Title != nil {
		clean := sanitize.Text(*p.Title)
		p.Title = &clean
	}
	if p.Description != nil {
		clean := sanitize.Text(*p.Description)
		p.Description = &clean
	}
	err = h.Coord.UpdateEvent(r.Context(), id, eventstore.UpdateFields{
		Title:           p.Title,
		Date:            p.Date,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		Location:        p.Location,
		Description:     p.Description,
		NeedsVolunteers: p.NeedsVolunteers,
	})
	if err != nil {
		h.Log.Error("events: update", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update event")
		return
	}
	updated, err := h.Coord.Events.GetByID(r.Context(), id)
	if err != nil {
		webapi.Error(w, http.StatusInternalServerError, "could not load event")
		return
	}
	webapi.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	e, err := h.Coord.Events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("events: load for delete", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not delete event")
		return
	}
	if !canManage(r, e) {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}
	if err := h.Coord.DeleteEventCascade(r.Context(), id); err != nil {
		h.Log.Error("events: delete cascade", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not delete event")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := h.Coord.ApproveEvent(r.Context(), id); err != nil {
		h.decisionError(w, err, "approve")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": models.StatusApproved})
}

type rejectPayload struct {
	Reason string `json:"reason" validate:"required,min=2,max=2000"`
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var p rejectPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Coord.RejectEvent(r.Context(), id, sanitize.Text(p.Reason)); err != nil {
		h.decisionError(w, err, "reject")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": models.StatusRejected})
}

func (h *Handler) decisionError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		webapi.Error(w, http.StatusNotFound, "event not found")
	case errors.Is(err, coordinator.ErrAlreadyDecided):
		webapi.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, coordinator.ErrReasonRequired):
		webapi.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error("events: "+op, zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not "+op+" event")
	}
}

// Attendees returns the registrations for an event, for the organizer's
// attendee list.
func (h *Handler) Attendees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	e, err := h.Coord.Events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("events: load for attendees", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load registrations")
		return
	}
	if !canManage(r, e) {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}
	regs, err := h.Coord.Registrations.ListByEvent(r.Context(), id)
	if err != nil {
		h.Log.Error("events: list attendees", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load registrations")
		return
	}
	webapi.JSON(w, http.StatusOK, regs)
}

// Package opportunities exposes the volunteer-opportunity endpoints:
// browse with per-user application state merged in, and organizer CRUD.
package opportunities

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/coordinator"
	opportunitystore "github.com/communitycare/carehub/internal/app/store/opportunities"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/app/system/webapi"
)

type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

func pathID(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	views, err := h.Coord.ListOpportunitiesForUser(r.Context(), uid)
	if err != nil {
		h.Log.Error("opportunities: list", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load opportunities")
		return
	}
	webapi.JSON(w, http.StatusOK, views)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid opportunity id")
		return
	}
	o, err := h.Coord.Opportunities.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "opportunity not found")
			return
		}
		h.Log.Error("opportunities: get", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load opportunity")
		return
	}
	webapi.JSON(w, http.StatusOK, o)
}

// ByEvent returns the opportunity attached to an event, or null when the
// event has none.
func (h *Handler) ByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "eventID")
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	o, err := h.Coord.OpportunityByEventID(r.Context(), eventID)
	if err != nil {
		h.Log.Error("opportunities: by event", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load opportunity")
		return
	}
	webapi.JSON(w, http.StatusOK, o)
}

type createPayload struct {
	EventID          string `json:"event_id" validate:"required,len=24,hexadecimal"`
	Title            string `json:"title" validate:"omitempty,max=200"`
	VolunteersNeeded int    `json:"volunteers_needed" validate:"required,min=1,max=10000"`
	Description      string `json:"description" validate:"omitempty,max=5000"`
	Timings          string `json:"timings" validate:"omitempty,max=300"`
	Location         string `json:"location" validate:"omitempty,max=300"`
	Rewards          string `json:"rewards" validate:"omitempty,max=300"`
	Refreshments     string `json:"refreshments" validate:"omitempty,max=300"`
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
	eventID, err := primitive.ObjectIDFromHex(p.EventID)
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.Coord.Events.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("opportunities: load event", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not create opportunity")
		return
	}
	if !authz.IsAdmin(r) && event.CreatedBy != uid {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}

	o, err := h.Coord.CreateOpportunity(r.Context(), uid, coordinator.CreateOpportunityInput{
		EventID:          eventID,
		Title:            p.Title,
		VolunteersNeeded: p.VolunteersNeeded,
		Description:      p.Description,
		Timings:          p.Timings,
		Location:         p.Location,
		Rewards:          p.Rewards,
		Refreshments:     p.Refreshments,
	})
	if err != nil {
		switch {
		case errors.Is(err, coordinator.ErrNoVolunteersNeeded):
			webapi.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, opportunitystore.ErrDuplicateOpportunity):
			webapi.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("opportunities: create", zap.Error(err))
			webapi.Error(w, http.StatusInternalServerError, "could not create opportunity")
		}
		return
	}
	webapi.JSON(w, http.StatusCreated, o)
}

type updatePayload struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	VolunteersNeeded *int    `json:"volunteers_needed" validate:"omitempty,min=1,max=10000"`
	Description      *string `json:"description" validate:"omitempty,max=5000"`
	Timings          *string `json:"timings" validate:"omitempty,max=300"`
	Location         *string `json:"location" validate:"omitempty,max=300"`
	Rewards          *string `json:"rewards" validate:"omitempty,max=300"`
	Refreshments     *string `json:"refreshments" validate:"omitempty,max=300"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid opportunity id")
		return
	}
	var p updatePayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.Coord.Opportunities.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "opportunity not found")
			return
		}
		h.Log.Error("opportunities: load for update", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update opportunity")
		return
	}
	if !h.canManage(r, o.EventID) {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}

	if p.Description != nil {
		clean := sanitize.Text(*p.Description)
		p.Description = &clean
	}
	err = h.Coord.UpdateOpportunity(r.Context(), id, opportunitystore.UpdateFields{
		Title:            p.Title,
		VolunteersNeeded: p.VolunteersNeeded,
		Description:      p.Description,
		Timings:          p.Timings,
		Location:         p.Location,
		Rewards:          p.Rewards,
		Refreshments:     p.Refreshments,
	})
	if err != nil {
		h.Log.Error("opportunities: update", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update opportunity")
		return
	}
	updated, err := h.Coord.Opportunities.GetByID(r.Context(), id)
	if err != nil {
		webapi.Error(w, http.StatusInternalServerError, "could not load opportunity")
		return
	}
	webapi.JSON(w, http.StatusOK, updated)
}

// Applications lists the applications for an opportunity so the organizer
// can select volunteers.
func (h *Handler) Applications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid opportunity id")
		return
	}
	o, err := h.Coord.Opportunities.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "opportunity not found")
			return
		}
		h.Log.Error("opportunities: load for applications", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load applications")
		return
	}
	if !h.canManage(r, o.EventID) {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return
	}
	apps, err := h.Coord.Applications.ListByOpportunity(r.Context(), id)
	if err != nil {
		h.Log.Error("opportunities: list applications", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load applications")
		return
	}
	webapi.JSON(w, http.StatusOK, apps)
}

func (h *Handler) canManage(r *http.Request, eventID primitive.ObjectID) bool {
	if authz.IsAdmin(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	event, err := h.Coord.Events.GetByID(r.Context(), eventID)
	if err != nil {
		return false
	}
	return event.CreatedBy == uid
}

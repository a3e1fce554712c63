// Package registrations exposes the attendee registration endpoints.
// Registering twice is a no-op rather than an error; the response says
// whether a new registration was created.
package registrations

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/coordinator"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/webapi"
)

type Handler struct {
	Coord *coordinator.Coordinator
	Log   *zap.Logger
}

type registerPayload struct {
	EventID     string `json:"event_id" validate:"required,len=24,hexadecimal"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	var p registerPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	eventID, err := primitive.ObjectIDFromHex(p.EventID)
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	user, err := h.Coord.Users.GetByID(r.Context(), uid)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	created, err := h.Coord.RegisterForEvent(r.Context(), user, eventID, p.PhoneNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("registrations: register", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not register")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	webapi.JSON(w, status, map[string]bool{"registered": created})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	cancelled, err := h.Coord.CancelRegistration(r.Context(), uid, eventID)
	if err != nil {
		h.Log.Error("registrations: cancel", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not cancel registration")
		return
	}
	if !cancelled {
		webapi.Error(w, http.StatusNotFound, "registration not found")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	regs, err := h.Coord.UserRegistrations(r.Context(), uid)
	if err != nil {
		h.Log.Error("registrations: list mine", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load registrations")
		return
	}
	webapi.JSON(w, http.StatusOK, regs)
}

// Package applications exposes the volunteer-application endpoints:
// apply (idempotent per user+opportunity), the volunteer's own list, and
// the organizer's selection and attendance updates.
package applications

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

type applyPayload struct {
	OpportunityID string `json:"opportunity_id" validate:"required,len=24,hexadecimal"`
	Message       string `json:"message" validate:"omitempty,max=5000"`
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	var p applyPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	oppID, err := primitive.ObjectIDFromHex(p.OpportunityID)
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid opportunity id")
		return
	}

	user, err := h.Coord.Users.GetByID(r.Context(), uid)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	app, err := h.Coord.ApplyForOpportunity(r.Context(), user, oppID, p.Message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "opportunity not found")
			return
		}
		h.Log.Error("applications: apply", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not submit application")
		return
	}
	webapi.JSON(w, http.StatusCreated, app)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	apps, err := h.Coord.Applications.ListByUser(r.Context(), uid)
	if err != nil {
		h.Log.Error("applications: list mine", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load applications")
		return
	}
	webapi.JSON(w, http.StatusOK, apps)
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p statusPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.canDecide(r, id, w) {
		return
	}
	if err := h.Coord.UpdateApplicationStatus(r.Context(), id, p.Status); err != nil {
		h.decisionError(w, err, "update application status")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": p.Status})
}

type attendancePayload struct {
	Attendance string `json:"attendance" validate:"required"`
}

func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p attendancePayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.canDecide(r, id, w) {
		return
	}
	if err := h.Coord.UpdateAttendance(r.Context(), id, p.Attendance); err != nil {
		h.decisionError(w, err, "update attendance")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"attendance": p.Attendance})
}

// canDecide checks that the caller owns the event behind the application
// (or is an admin). It writes the error response itself when it fails.
func (h *Handler) canDecide(r *http.Request, appID string, w http.ResponseWriter) bool {
	if authz.IsAdmin(r) {
		return true
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return false
	}
	app, err := h.Coord.Applications.GetByID(r.Context(), appID)
	if err != nil || app == nil {
		webapi.Error(w, http.StatusNotFound, "application not found")
		return false
	}
	opp, err := h.Coord.Opportunities.GetByID(r.Context(), app.OpportunityID)
	if err != nil {
		webapi.Error(w, http.StatusNotFound, "opportunity not found")
		return false
	}
	event, err := h.Coord.Events.GetByID(r.Context(), opp.EventID)
	if err != nil || event.CreatedBy != uid {
		webapi.Error(w, http.StatusForbidden, "not your event")
		return false
	}
	return true
}

func (h *Handler) decisionError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, coordinator.ErrApplicationNotFound):
		webapi.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, coordinator.ErrInvalidStatus),
		errors.Is(err, coordinator.ErrInvalidAttendance):
		webapi.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, coordinator.ErrNotDecidable),
		errors.Is(err, coordinator.ErrNotSelected):
		webapi.Error(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("applications: "+op, zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not "+op)
	}
}

// Package adminusers exposes the admin account-moderation endpoints:
// the pending queue, approve/reject decisions, and role changes.
package adminusers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/app/system/webapi"
	"github.com/communitycare/carehub/internal/domain/models"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListPending(r.Context())
	if err != nil {
		h.Log.Error("adminusers: list pending", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load users")
		return
	}
	webapi.JSON(w, http.StatusOK, users)
}

func (h *Handler) Approved(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListApproved(r.Context())
	if err != nil {
		h.Log.Error("adminusers: list approved", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load users")
		return
	}
	webapi.JSON(w, http.StatusOK, users)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.ApprovalStatus{Status: models.StatusApproved})
}

type rejectPayload struct {
	Reason string `json:"reason" validate:"required,min=2,max=2000"`
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var p rejectPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.decide(w, r, models.ApprovalStatus{
		Status: models.StatusRejected,
		Reason: sanitize.Text(p.Reason),
	})
}

// decide applies an approval decision. Decisions are one-shot: once an
// account leaves Pending it cannot be re-decided.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision models.ApprovalStatus) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("adminusers: load user", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update user")
		return
	}
	if u.ApprovalStatus.IsTerminal() {
		webapi.Error(w, http.StatusConflict, "account approval is already decided")
		return
	}
	if err := h.Users.SetApproval(r.Context(), id, decision); err != nil {
		h.Log.Error("adminusers: set approval", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update user")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": decision.Status})
}

type rolePayload struct {
	Role string `json:"role" validate:"required"`
}

var assignableRoles = map[string]bool{
	models.RoleSeeker:     true,
	models.RoleVolunteer:  true,
	models.RoleOrganizer:  true,
	models.RoleAdmin:      true,
	models.RoleSuperAdmin: true,
}

func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		webapi.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var p rolePayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !assignableRoles[p.Role] {
		webapi.Error(w, http.StatusBadRequest, "invalid role")
		return
	}
	// Only a super admin may grant admin roles.
	if (p.Role == models.RoleAdmin || p.Role == models.RoleSuperAdmin) &&
		!authz.HasAnyRole(r, models.RoleSuperAdmin) {
		webapi.Error(w, http.StatusForbidden, "super admin required")
		return
	}
	if err := h.Users.SetRole(r.Context(), id, p.Role); err != nil {
		h.Log.Error("adminusers: set role", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update user")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"role": p.Role})
}

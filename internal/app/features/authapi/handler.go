// Package authapi implements account registration, login, and the
// current-user endpoint for the mobile clients. Sessions are stateless
// bearer tokens issued by system/auth.
package authapi

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/app/system/webapi"
	"github.com/communitycare/carehub/internal/domain/models"
)

type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

type registerPayload struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Role        string `json:"role" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

// selfServeRoles are the roles an account may claim at sign-up. Admin
// roles are only ever granted by an existing admin.
var selfServeRoles = map[string]bool{
	models.RoleSeeker:    true,
	models.RoleVolunteer: true,
	models.RoleOrganizer: true,
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var p registerPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !selfServeRoles[p.Role] {
		webapi.Error(w, http.StatusBadRequest, "invalid role")
		return
	}

	u := models.User{
		FullName:    sanitize.Text(p.FullName),
		Email:       p.Email,
		Role:        p.Role,
		PhoneNumber: sanitize.Text(p.PhoneNumber),
	}
	created, err := h.Users.Create(r.Context(), u, p.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webapi.Error(w, http.StatusConflict, "email already registered")
			return
		}
		h.Log.Error("authapi: create user", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}
	webapi.JSON(w, http.StatusCreated, created)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), p.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("authapi: lookup user", zap.Error(err))
		}
		webapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !h.Users.CheckPassword(u, p.Password) {
		webapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.ApprovalStatus.Status != models.StatusApproved {
		webapi.Error(w, http.StatusForbidden, "account pending approval")
		return
	}

	tok, err := h.Tokens.Issue(u.ID, u.FullName, u.Email, u.Role)
	if err != nil {
		h.Log.Error("authapi: issue token", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]any{"token": tok, "user": u})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	u, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		webapi.Error(w, http.StatusNotFound, "account not found")
		return
	}
	webapi.JSON(w, http.StatusOK, u)
}

type profilePayload struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=32"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=512"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	var p profilePayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	if p.FullName != nil {
		clean := sanitize.Text(*p.FullName)
		p.FullName = &clean
	}
	if p.PhoneNumber != nil {
		clean := sanitize.Text(*p.PhoneNumber)
		p.PhoneNumber = &clean
	}
	if err := h.Users.UpdateProfile(r.Context(), id, p.FullName, p.PhoneNumber, p.ProfileImage); err != nil {
		h.Log.Error("authapi: update profile", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	u, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		webapi.Error(w, http.StatusNotFound, "account not found")
		return
	}
	webapi.JSON(w, http.StatusOK, u)
}

// Package journal exposes the private journaling endpoints. Entries are
// strictly owned by their author; sentiment is scored once at write time.
package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/recommend"
	journalstore "github.com/communitycare/carehub/internal/app/store/journal"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/sanitize"
	"github.com/communitycare/carehub/internal/app/system/webapi"
	"github.com/communitycare/carehub/internal/domain/models"
)

type Handler struct {
	Journal *journalstore.Store
	Log     *zap.Logger
}

type entryPayload struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=20000"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	var p entryPayload
	if err := webapi.Decode(r, &p); err != nil {
		webapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	title := sanitize.Text(p.Title)
	body := sanitize.Text(p.Body)
	entry, err := h.Journal.Create(r.Context(), models.JournalEntry{
		UserID:    uid,
		Title:     title,
		Body:      body,
		Sentiment: recommend.Score(title + " " + body),
	})
	if err != nil {
		h.Log.Error("journal: create", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not save entry")
		return
	}
	webapi.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	entries, err := h.Journal.ListByUser(r.Context(), uid)
	if err != nil {
		h.Log.Error("journal: list", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load entries")
		return
	}
	webapi.JSON(w, http.StatusOK, entries)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Error(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	// The delete filter includes the owner, so another user's entry id
	// simply matches nothing.
	n, err := h.Journal.Delete(r.Context(), id, uid)
	if err != nil {
		h.Log.Error("journal: delete", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not delete entry")
		return
	}
	if n == 0 {
		webapi.Error(w, http.StatusNotFound, "entry not found")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

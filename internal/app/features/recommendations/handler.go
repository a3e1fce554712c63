// Package recommendations exposes the per-user event recommendations
// derived from journal sentiment. Reads serve the stored snapshot; the
// recompute endpoint refreshes it on demand (the nightly job refreshes
// everyone).
package recommendations

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/recommend"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/authz"
	"github.com/communitycare/carehub/internal/app/system/webapi"
)

type Handler struct {
	Engine *recommend.Engine
	Users  *userstore.Store
	Log    *zap.Logger
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	user, err := h.Users.GetByID(r.Context(), uid)
	if err != nil {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	events, err := h.Engine.RecommendedEvents(r.Context(), user)
	if err != nil {
		h.Log.Error("recommendations: list", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load recommendations")
		return
	}
	webapi.JSON(w, http.StatusOK, events)
}

func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		webapi.Error(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	sentiment, err := h.Engine.SentimentAvg30d(r.Context(), uid)
	if err != nil {
		h.Log.Error("recommendations: sentiment", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not recompute recommendations")
		return
	}
	ids, err := h.Engine.Recompute(r.Context(), uid, sentiment)
	if err != nil {
		h.Log.Error("recommendations: recompute", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not recompute recommendations")
		return
	}
	webapi.JSON(w, http.StatusOK, map[string]any{
		"journal_sentiment_avg_30d": sentiment,
		"recommended_event_ids":     ids,
	})
}

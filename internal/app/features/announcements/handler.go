// Package announcements exposes the broadcast feed shown on the home
// screen. Writes happen as side effects of admin actions, not here.
package announcements

import (
	"net/http"

	"go.uber.org/zap"

	announcementstore "github.com/communitycare/carehub/internal/app/store/announcements"
	"github.com/communitycare/carehub/internal/app/system/webapi"
)

type Handler struct {
	Announcements *announcementstore.Store
	Log           *zap.Logger
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Announcements.ListActive(r.Context())
	if err != nil {
		h.Log.Error("announcements: list", zap.Error(err))
		webapi.Error(w, http.StatusInternalServerError, "could not load announcements")
		return
	}
	webapi.JSON(w, http.StatusOK, items)
}

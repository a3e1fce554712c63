// Package health exposes the liveness endpoint used by deploy probes.
package health

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/system/webapi"
)

type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health: mongo ping failed", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	webapi.JSON(w, code, map[string]string{"status": status})
}

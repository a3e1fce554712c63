package registrations

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/registrations", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/", h.Mine)
		r.Post("/", h.Register)
		r.Delete("/{eventID}", h.Cancel)
	})
}

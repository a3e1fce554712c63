package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/communitycare/carehub/internal/app/system/auth"
)

func Routes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSignedIn)
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateProfile)
		})
	})
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/communitycare/carehub/internal/app/broadcast"
	"github.com/communitycare/carehub/internal/app/coordinator"
	adminusersfeature "github.com/communitycare/carehub/internal/app/features/adminusers"
	announcementsfeature "github.com/communitycare/carehub/internal/app/features/announcements"
	applicationsfeature "github.com/communitycare/carehub/internal/app/features/applications"
	authapifeature "github.com/communitycare/carehub/internal/app/features/authapi"
	eventsfeature "github.com/communitycare/carehub/internal/app/features/events"
	healthfeature "github.com/communitycare/carehub/internal/app/features/health"
	journalfeature "github.com/communitycare/carehub/internal/app/features/journal"
	opportunitiesfeature "github.com/communitycare/carehub/internal/app/features/opportunities"
	recommendationsfeature "github.com/communitycare/carehub/internal/app/features/recommendations"
	registrationsfeature "github.com/communitycare/carehub/internal/app/features/registrations"
	"github.com/communitycare/carehub/internal/app/recommend"
	announcementstore "github.com/communitycare/carehub/internal/app/store/announcements"
	journalstore "github.com/communitycare/carehub/internal/app/store/journal"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. All routes are JSON endpoints under
// /api/v1 (the mobile clients are the only consumers), plus the bare
// health probe for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CareHubMongoDatabase

	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL)

	announcer := broadcast.New(db, broadcast.MailConfig{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	coord := coordinator.New(db, announcer, logger)
	engine := recommend.New(db, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Global auth middleware: resolves the bearer token into a SessionUser
	// so every handler can use auth.CurrentUser(r) / authz.UserCtx(r).
	r.Use(tokens.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthfeature.Routes(r, &healthfeature.Handler{Client: deps.CareHubMongoClient, Log: logger})

	r.Route("/api/v1", func(api chi.Router) {
		authapifeature.Routes(api, &authapifeature.Handler{
			Users:  userstore.New(db),
			Tokens: tokens,
			Log:    logger,
		})

		eventsfeature.Routes(api, &eventsfeature.Handler{Coord: coord, Log: logger})
		opportunitiesfeature.Routes(api, &opportunitiesfeature.Handler{Coord: coord, Log: logger})
		applicationsfeature.Routes(api, &applicationsfeature.Handler{Coord: coord, Log: logger})
		registrationsfeature.Routes(api, &registrationsfeature.Handler{Coord: coord, Log: logger})

		journalfeature.Routes(api, &journalfeature.Handler{
			Journal: journalstore.New(db),
			Log:     logger,
		})
		recommendationsfeature.Routes(api, &recommendationsfeature.Handler{
			Engine: engine,
			Users:  userstore.New(db),
			Log:    logger,
		})
		announcementsfeature.Routes(api, &announcementsfeature.Handler{
			Announcements: announcementstore.New(db),
			Log:           logger,
		})

		adminusersfeature.Routes(api, &adminusersfeature.Handler{
			Users: userstore.New(db),
			Log:   logger,
		})
	})

	return r, nil
}

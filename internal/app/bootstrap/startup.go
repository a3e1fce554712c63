// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/communitycare/carehub/internal/app/recommend"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/app/system/tasks"
	"github.com/communitycare/carehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// sched is created in Startup and stopped in Shutdown.
var sched *tasks.Scheduler

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built:
// superadmin promotion and the background recompute scheduler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail != "" {
		if err := promoteSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	engine := recommend.New(deps.CareHubMongoDatabase, logger)
	s, err := tasks.NewScheduler(engine, appCfg.RecomputeSchedule, logger)
	if err != nil {
		return err
	}
	sched = s
	sched.Start()
	return nil
}

// promoteSuperAdmin marks the configured account as an approved superadmin.
// A missing account is logged, not fatal: the operator may simply not have
// registered yet.
func promoteSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.CareHubMongoDatabase)
	u, err := users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		logger.Warn("superadmin account not found, skipping promotion",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	if err := users.SetRole(ctx, u.ID, models.RoleSuperAdmin); err != nil {
		return err
	}
	if err := users.SetApproval(ctx, u.ID, models.ApprovalStatus{Status: models.StatusApproved}); err != nil {
		return err
	}
	logger.Info("superadmin promoted", zap.String("email", email))
	return nil
}

// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/carpoolhub/internal/app/store/users"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
		return err
	}
	if deps.Snapshots != nil {
		deps.Snapshots.Start()
	}
	return nil
}

// ensureAdmin promotes the user with the given email to the admin
// permission. Users are created by the carpool app's onboarding, so a
// missing user is logged and skipped rather than created.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	users := userstore.New(deps.MongoDatabase)
	u, err := users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn("admin_email does not match any user; skipping promotion", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up admin user: %w", err)
	}
	if u.Permission == models.PermissionAdmin {
		return nil
	}
	if err := users.SetPermission(ctx, u.ID, models.PermissionAdmin); err != nil {
		return fmt.Errorf("promote admin user: %w", err)
	}
	logger.Info("promoted user to admin", zap.String("user_id", u.ID.Hex()), zap.String("email", u.Email))
	return nil
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	admindatafeature "github.com/dalemusser/carpoolhub/internal/app/features/admindata"
	connectionsfeature "github.com/dalemusser/carpoolhub/internal/app/features/connections"
	errorsfeature "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/carpoolhub/internal/app/features/health"
	messagesfeature "github.com/dalemusser/carpoolhub/internal/app/features/messages"
	"github.com/dalemusser/carpoolhub/internal/app/store/queries/adminqueries"
	userstore "github.com/dalemusser/carpoolhub/internal/app/store/users"
	"github.com/dalemusser/carpoolhub/internal/app/system/auth"
	"github.com/dalemusser/carpoolhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It mounts the health check, the admin
// data dashboard, messaging and connect routers behind session middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on each request so permission and status changes
	// take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	loc, err := appCfg.Location()
	if err != nil {
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	// The refresher serves cached snapshots; without it every request reads
	// the collections directly.
	var snapshots analytics.Provider = adminqueries.New(deps.MongoDatabase)
	var snapshotAge healthfeature.SnapshotAge
	if deps.Snapshots != nil {
		snapshots = deps.Snapshots
		snapshotAge = deps.Snapshots
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, snapshotAge, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Admin analytics and CSV exports
	adminDataHandler := admindatafeature.NewHandler(snapshots, loc, errLog, logger)
	r.Mount("/admin/data", admindatafeature.Routes(adminDataHandler, sessionMgr))

	// Messaging and live updates
	messagesHandler := messagesfeature.NewHandler(deps.MongoDatabase, deps.Hub, loc, errLog, logger)
	messagesHandler.SendLimit = perMinute(appCfg.SendRateLimit)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler, sessionMgr))

	// Connect requests
	connectHandler := connectionsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	connectHandler.Limit = perMinute(appCfg.ConnectRateLimit)
	r.Mount("/connect", connectionsfeature.Routes(connectHandler, sessionMgr))

	return r, nil
}

func perMinute(n int) *ratelimit.Limiter {
	if n <= 0 {
		return nil
	}
	return ratelimit.New(n, time.Minute)
}

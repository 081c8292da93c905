// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CarpoolHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CARPOOLHUB_MONGO_URI, CARPOOLHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "carpool", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "carpoolhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},

	{Name: "admin_email", Default: "", Desc: "Email of a user to promote to admin on startup"},

	// Analytics
	{Name: "analytics_timezone", Default: "UTC", Desc: "IANA timezone for week and day boundaries (e.g., America/Chicago)"},
	{Name: "snapshot_refresh_interval", Default: "1m", Desc: "How often the admin data snapshot is re-read (0 disables)"},

	// Rate limits
	{Name: "send_rate_limit", Default: 30, Desc: "Messages a user may send per minute (0 disables)"},
	{Name: "connect_rate_limit", Default: 10, Desc: "Connect presses a user may make per minute (0 disables)"},

	// Timeout overrides
	{Name: "timeout_short", Default: "", Desc: "Timeout for single-document operations (e.g., 5s)"},
	{Name: "timeout_long", Default: "", Desc: "Timeout for the analytics snapshot read (e.g., 30s)"},
	{Name: "timeout_export", Default: "", Desc: "Timeout for building CSV and zip exports (e.g., 60s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, CARPOOLHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CARPOOLHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 30*24*time.Hour),

		AdminEmail: appValues.String("admin_email"),

		AnalyticsTimezone:       appValues.String("analytics_timezone"),
		SnapshotRefreshInterval: appValues.Duration("snapshot_refresh_interval", time.Minute),

		SendRateLimit:    appValues.Int("send_rate_limit"),
		ConnectRateLimit: appValues.Int("connect_rate_limit"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
		TimeoutExport: appValues.Duration("timeout_export", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI and analytics timezone are checked here so a bad value
// aborts startup before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must be set")
	}
	if _, err := appCfg.Location(); err != nil {
		logger.Error("invalid analytics timezone", zap.String("analytics_timezone", appCfg.AnalyticsTimezone), zap.Error(err))
		return fmt.Errorf("invalid analytics_timezone %q: %w", appCfg.AnalyticsTimezone, err)
	}
	if appCfg.SnapshotRefreshInterval < 0 {
		return fmt.Errorf("snapshot_refresh_interval must not be negative")
	}
	if appCfg.SendRateLimit < 0 || appCfg.ConnectRateLimit < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	return nil
}

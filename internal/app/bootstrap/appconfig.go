// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging and CORS; AppConfig covers everything carpool-specific.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration. Sessions are issued by the carpool
	// app's sign-in; this service must share its key and cookie name.
	SessionKey    string
	SessionName   string
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// AdminEmail is promoted to the admin permission on startup (blank skips).
	AdminEmail string

	// Analytics
	AnalyticsTimezone       string        // IANA zone used for week and day boundaries
	SnapshotRefreshInterval time.Duration // 0 disables the background refresher

	// Per-user requests per minute; 0 disables the limit.
	SendRateLimit    int
	ConnectRateLimit int

	// Timeout overrides; zero keeps the default.
	TimeoutShort  time.Duration
	TimeoutLong   time.Duration
	TimeoutExport time.Duration
}

// Timeouts returns the timeout overrides in the form timeouts.Configure expects.
func (c AppConfig) Timeouts() timeouts.Config {
	return timeouts.Config{
		Short:  c.TimeoutShort,
		Long:   c.TimeoutLong,
		Export: c.TimeoutExport,
	}
}

// Location loads AnalyticsTimezone. An empty zone is UTC.
func (c AppConfig) Location() (*time.Location, error) {
	if c.AnalyticsTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.AnalyticsTimezone)
}

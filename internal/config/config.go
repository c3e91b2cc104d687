// Package config loads application settings from environment variables.
// Every setting has a default except where noted; Load validates the result
// so misconfiguration fails at startup.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including draining imports (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the per-request middleware timeout (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SessionConfig controls the initial state of the ordering session.
type SessionConfig struct {
	// UserCount is how many numbered users to create when UserNames is empty (default: 12)
	UserCount int `env:"SESSION_USER_COUNT" default:"12"`

	// UserPrefix is the display-name prefix for numbered users
	UserPrefix string `env:"SESSION_USER_PREFIX" default:"Пользователь"`

	// UserNames is an explicit comma-separated user list; overrides UserCount
	UserNames []string `env:"SESSION_USER_NAMES"`

	// SeedCatalog starts the catalog with the sample products (default: true)
	SeedCatalog bool `env:"SESSION_SEED_CATALOG" default:"true"`

	// AuditSize is how many audit entries the session keeps (default: 500)
	AuditSize int `env:"SESSION_AUDIT_SIZE" default:"500"`
}

// ImportConfig holds spreadsheet import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum upload size in bytes (default: 10MiB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the number of imports decoded at once (default: 2)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long an import waits for a free slot (default: 30s)
	MaxWait time.Duration `env:"IMPORT_MAX_WAIT" default:"30s"`
}

// RateLimitConfig holds per-IP rate limits.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute applies to every route (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// ImportLimit applies to the import endpoint on top of the general limit (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose forwarding headers are honored
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP sends a Content-Security-Policy header (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// Enabled serves /metrics (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`

	// Namespace prefixes every metric name (default: orderdesk)
	Namespace string `env:"METRICS_NAMESPACE" default:"orderdesk"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// InitialUsers returns the user names a new session starts with.
func (c *SessionConfig) InitialUsers() []string {
	if len(c.UserNames) > 0 {
		out := make([]string, len(c.UserNames))
		copy(out, c.UserNames)
		return out
	}
	return core.DefaultUserNames(c.UserCount, c.UserPrefix)
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors are wrapped via this package's error kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the sqlite database file holding the raw records.
	DBPath string `koanf:"db_path"`

	// AdminUser is the login name for the admin surface. The matching
	// credential row is seeded on first start from AdminPassword.
	AdminUser string `koanf:"admin_user"`

	// AdminPassword seeds the admin credential when none is stored yet.
	// Rotating it later happens through the store, not here.
	AdminPassword string `koanf:"admin_password"`

	// JWTKeyHex is the hex-encoded HMAC key signing the auth cookie.
	JWTKeyHex string `koanf:"jwt_key"`

	// SessionMinutes bounds the lifetime of an admin session cookie.
	SessionMinutes int `koanf:"session_minutes"`

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "10-M"
	// for ten attempts per minute per client.
	LoginRateLimit string `koanf:"login_rate_limit"`

	// CORSOrigins lists allowed browser origins for the JSON API.
	CORSOrigins []string `koanf:"cors_origins"`

	// MetricsIntervalSeconds sets how often directory gauges refresh.
	MetricsIntervalSeconds int `koanf:"metrics_interval_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		DBPath:                 "weekendcup.db",
		AdminUser:              "commissioner",
		AdminPassword:          "",
		JWTKeyHex:              "",
		SessionMinutes:         60,
		LoginRateLimit:         "10-M",
		CORSOrigins:            []string{"*"},
		MetricsIntervalSeconds: 10,
	}
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, timeouts); AppConfig is
// everything specific to CareHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token auth for the mobile clients
	JWTSecret string
	JWTTTL    time.Duration

	// Email/SMTP for decision notifications (blank host disables email)
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Cron spec for the nightly recommendation recompute
	RecomputeSchedule string

	// SuperAdmin bootstrap (promotes the account on startup when set)
	SuperAdminEmail string
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Session  SessionConfig
	Admin    AdminConfig
	Uploads  UploadsConfig
	SMTP     SMTPConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Authentication cookie name
	MaxAge     int    // Session lifetime in seconds
}

// AdminConfig describes the bootstrap admin account that is ensured at
// startup. The defaults mirror the original deployment; override them
// anywhere the instance is reachable from the outside.
type AdminConfig struct {
	Email    string
	Password string
}

// UploadsConfig selects where receipt files are stored.
type UploadsConfig struct { //nolint:govet // fieldalignment not critical
	Backend     string // local, s3
	Dir         string // directory for the local backend
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // optional custom endpoint (MinIO et al.)
	S3AccessKey string
	S3SecretKey string
}

// SMTPConfig configures optional donor notification mails. Notifications
// are disabled unless a host is set.
type SMTPConfig struct { //nolint:govet // fieldalignment not critical
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

func NewFromCLI(cmd *cli.Command) *Config {
	return &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
		},
		Admin: AdminConfig{
			Email:    cmd.String("admin-email"),
			Password: cmd.String("admin-password"),
		},
		Uploads: UploadsConfig{
			Backend:     cmd.String("uploads-backend"),
			Dir:         cmd.String("uploads-dir"),
			S3Bucket:    cmd.String("uploads-s3-bucket"),
			S3Region:    cmd.String("uploads-s3-region"),
			S3Endpoint:  cmd.String("uploads-s3-endpoint"),
			S3AccessKey: cmd.String("uploads-s3-access-key"),
			S3SecretKey: cmd.String("uploads-s3-secret-key"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
	}
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   8,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/donatetracker.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "token",
			Usage:   "Authentication cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   604800, // 7 days in seconds
			Usage:   "Session lifetime in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "admin-email",
			Value:   "admin@donatetracker.com",
			Usage:   "Email of the bootstrap admin account",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ADMIN_EMAIL"), toml.TOML("admin.email", configFile)),
		},
		&cli.StringFlag{
			Name:    "admin-password",
			Value:   "admin123",
			Usage:   "Password of the bootstrap admin account",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ADMIN_PASSWORD"), toml.TOML("admin.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-backend",
			Value:   "local",
			Usage:   "Receipt storage backend (local, s3)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_BACKEND"), toml.TOML("uploads.backend", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-dir",
			Value:   "./uploads",
			Usage:   "Directory for locally stored receipts",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_DIR"), toml.TOML("uploads.dir", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-s3-bucket",
			Usage:   "S3 bucket for receipts",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_S3_BUCKET"), toml.TOML("uploads.s3_bucket", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-s3-region",
			Value:   "us-east-1",
			Usage:   "S3 region for receipts",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_S3_REGION"), toml.TOML("uploads.s3_region", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-s3-endpoint",
			Usage:   "Custom S3 endpoint (for MinIO and friends)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_S3_ENDPOINT"), toml.TOML("uploads.s3_endpoint", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-s3-access-key",
			Usage:   "S3 access key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_S3_ACCESS_KEY"), toml.TOML("uploads.s3_access_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "uploads-s3-secret-key",
			Usage:   "S3 secret key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOADS_S3_SECRET_KEY"), toml.TOML("uploads.s3_secret_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP host for donor notifications (disabled if empty)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "From address for donor notifications",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "Donation Tracker",
			Usage:   "From display name for donor notifications",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS when talking to the SMTP server",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
	}
}

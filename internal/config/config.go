package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. Everything is injected;
// there are no embedded credentials or host allowances anywhere else in
// the codebase.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name string
	Env  string // development, production
	Port string
}

// DatabaseConfig holds the two DSNs: the main tenant store and the
// isolated audit store. They must point at different databases; nothing
// in the code ever writes audit rows to the main DSN or tenant rows to
// the audit DSN.
type DatabaseConfig struct {
	DSN      string
	AuditDSN string
}

// JWTConfig holds token issuance settings.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration from the environment (a .env file is honored
// when present) and validates the options that have no safe default.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "assetbase")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.issuer", "assetbase")
	v.SetDefault("jwt.access_ttl", "30m")
	v.SetDefault("jwt.refresh_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			DSN:      v.GetString("database.dsn"),
			AuditDSN: v.GetString("database.audit_dsn"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Issuer:     v.GetString("jwt.issuer"),
			AccessTTL:  v.GetDuration("jwt.access_ttl"),
			RefreshTTL: v.GetDuration("jwt.refresh_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("config: DATABASE_DSN is required")
	}
	if c.Database.AuditDSN == "" {
		return fmt.Errorf("config: DATABASE_AUDIT_DSN is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Database.DSN == c.Database.AuditDSN {
		return fmt.Errorf("config: audit store must not share the main database DSN")
	}
	return nil
}

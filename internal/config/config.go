package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Checkpoint backends.
const (
	CheckpointPostgres = "postgres"
	CheckpointBadger   = "badger"
	CheckpointS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Auth       AuthConfig
	S3         S3Config
	Log        LogConfig
	Analysis   AnalysisConfig
	CORS       CORSConfig
	Checkpoint CheckpointConfig
	Ledger     LedgerConfig
	Names      NamesConfig
	Notify     NotifyConfig
}

// NotifyConfig holds session completion notification settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// NamesConfig holds name resolution settings.
type NamesConfig struct {
	// NicknameFile is an optional YAML file extending the built-in nickname table.
	NicknameFile string `mapstructure:"nickname_file"`
}

// LedgerConfig holds ownership ledger defaults.
type LedgerConfig struct {
	DefaultAcres         float64 `mapstructure:"default_acres"`
	DefaultPatentGrantor string  `mapstructure:"default_patent_grantor"`
}

// CheckpointConfig selects and configures the session checkpoint store.
type CheckpointConfig struct {
	Backend    string `mapstructure:"backend"`
	BadgerPath string `mapstructure:"badger_path"`
	S3Prefix   string `mapstructure:"s3_prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single analysis provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	BaseURL      string `mapstructure:"base_url"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalysisConfig holds analysis provider settings. Providers are tried in order.
type AnalysisConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// Providers returns the configured providers in fallback order.
func (a *AnalysisConfig) Providers() []*ProviderConfig {
	var out []*ProviderConfig
	if a.Primary.Provider != "" {
		out = append(out, &a.Primary)
	}
	if a.Secondary.Provider != "" {
		out = append(out, &a.Secondary)
	}
	return out
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// Migrations is the directory holding the golang-migrate SQL files.
	Migrations string `mapstructure:"migrations"`
}

// MigrationsURL returns the golang-migrate source URL for the migrations directory.
func (d *DBConfig) MigrationsURL() string {
	if strings.Contains(d.Migrations, "://") {
		return d.Migrations
	}
	return "file://" + filepath.ToSlash(d.Migrations)
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer token verification settings. Tokens are issued elsewhere.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Issuer  string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the RUNSHEET_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RUNSHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "20s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "runsheet")
	v.SetDefault("db.password", "runsheet_secret")
	v.SetDefault("db.name", "runsheet_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.migrations", "db/migrations")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "runsheet-checkpoints")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Checkpoint defaults
	v.SetDefault("checkpoint.backend", CheckpointBadger)
	v.SetDefault("checkpoint.badger_path", "./data/checkpoints")
	v.SetDefault("checkpoint.s3_prefix", "checkpoints/")

	// Ledger defaults
	v.SetDefault("ledger.default_acres", 80)
	v.SetDefault("ledger.default_patent_grantor", "USA")

	v.SetDefault("names.nickname_file", "")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_address", "noreply@runsheet.local")
	v.SetDefault("notify.from_name", "Runsheet")
	v.SetDefault("notify.recipients", "")

	// Analysis provider defaults
	v.SetDefault("analysis.primary.provider", "claude")
	v.SetDefault("analysis.primary.api_key", "")
	v.SetDefault("analysis.primary.default_model", "")
	v.SetDefault("analysis.primary.base_url", "")
	v.SetDefault("analysis.primary.timeout_secs", 120)
	v.SetDefault("analysis.secondary.provider", "")
	v.SetDefault("analysis.secondary.api_key", "")
	v.SetDefault("analysis.secondary.default_model", "")
	v.SetDefault("analysis.secondary.base_url", "")
	v.SetDefault("analysis.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "RUNSHEET_SERVER_PORT",
		"server.read_timeout":              "RUNSHEET_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "RUNSHEET_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":          "RUNSHEET_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":               "RUNSHEET_SERVER_ENVIRONMENT",
		"db.host":                          "RUNSHEET_DB_HOST",
		"db.port":                          "RUNSHEET_DB_PORT",
		"db.user":                          "RUNSHEET_DB_USER",
		"db.password":                      "RUNSHEET_DB_PASSWORD",
		"db.name":                          "RUNSHEET_DB_NAME",
		"db.sslmode":                       "RUNSHEET_DB_SSLMODE",
		"db.max_open":                      "RUNSHEET_DB_MAX_OPEN",
		"db.max_idle":                      "RUNSHEET_DB_MAX_IDLE",
		"db.migrations":                    "RUNSHEET_DB_MIGRATIONS",
		"auth.enabled":                     "RUNSHEET_AUTH_ENABLED",
		"auth.secret":                      "RUNSHEET_AUTH_SECRET",
		"auth.issuer":                      "RUNSHEET_AUTH_ISSUER",
		"s3.region":                        "RUNSHEET_S3_REGION",
		"s3.bucket":                        "RUNSHEET_S3_BUCKET",
		"s3.endpoint":                      "RUNSHEET_S3_ENDPOINT",
		"s3.access_key":                    "RUNSHEET_S3_ACCESS_KEY",
		"s3.secret_key":                    "RUNSHEET_S3_SECRET_KEY",
		"log.level":                        "RUNSHEET_LOG_LEVEL",
		"log.format":                       "RUNSHEET_LOG_FORMAT",
		"cors.allowed_origins":             "RUNSHEET_CORS_ALLOWED_ORIGINS",
		"checkpoint.backend":               "RUNSHEET_CHECKPOINT_BACKEND",
		"checkpoint.badger_path":           "RUNSHEET_CHECKPOINT_BADGER_PATH",
		"checkpoint.s3_prefix":             "RUNSHEET_CHECKPOINT_S3_PREFIX",
		"ledger.default_acres":             "RUNSHEET_LEDGER_DEFAULT_ACRES",
		"ledger.default_patent_grantor":    "RUNSHEET_LEDGER_DEFAULT_PATENT_GRANTOR",
		"names.nickname_file":              "RUNSHEET_NAMES_NICKNAME_FILE",
		"notify.provider":                  "RUNSHEET_NOTIFY_PROVIDER",
		"notify.region":                    "RUNSHEET_NOTIFY_REGION",
		"notify.from_address":              "RUNSHEET_NOTIFY_FROM_ADDRESS",
		"notify.from_name":                 "RUNSHEET_NOTIFY_FROM_NAME",
		"notify.recipients":                "RUNSHEET_NOTIFY_RECIPIENTS",
		"analysis.primary.provider":        "RUNSHEET_ANALYSIS_PRIMARY_PROVIDER",
		"analysis.primary.api_key":         "RUNSHEET_ANALYSIS_PRIMARY_API_KEY",
		"analysis.primary.default_model":   "RUNSHEET_ANALYSIS_PRIMARY_DEFAULT_MODEL",
		"analysis.primary.base_url":        "RUNSHEET_ANALYSIS_PRIMARY_BASE_URL",
		"analysis.primary.timeout_secs":    "RUNSHEET_ANALYSIS_PRIMARY_TIMEOUT_SECS",
		"analysis.secondary.provider":      "RUNSHEET_ANALYSIS_SECONDARY_PROVIDER",
		"analysis.secondary.api_key":       "RUNSHEET_ANALYSIS_SECONDARY_API_KEY",
		"analysis.secondary.default_model": "RUNSHEET_ANALYSIS_SECONDARY_DEFAULT_MODEL",
		"analysis.secondary.base_url":      "RUNSHEET_ANALYSIS_SECONDARY_BASE_URL",
		"analysis.secondary.timeout_secs":  "RUNSHEET_ANALYSIS_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if RUNSHEET_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RUNSHEET_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		Migrations: v.GetString("db.migrations"),
	}
	cfg.Auth = AuthConfig{
		Enabled: v.GetBool("auth.enabled"),
		Secret:  v.GetString("auth.secret"),
		Issuer:  v.GetString("auth.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Checkpoint = CheckpointConfig{
		Backend:    strings.ToLower(v.GetString("checkpoint.backend")),
		BadgerPath: v.GetString("checkpoint.badger_path"),
		S3Prefix:   v.GetString("checkpoint.s3_prefix"),
	}
	cfg.Ledger = LedgerConfig{
		DefaultAcres:         v.GetFloat64("ledger.default_acres"),
		DefaultPatentGrantor: v.GetString("ledger.default_patent_grantor"),
	}
	cfg.Names = NamesConfig{
		NicknameFile: v.GetString("names.nickname_file"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipients:  splitList(v.GetString("notify.recipients")),
	}
	cfg.Analysis = AnalysisConfig{
		Primary:   providerConfig(v, "analysis.primary"),
		Secondary: providerConfig(v, "analysis.secondary"),
	}

	switch cfg.Checkpoint.Backend {
	case CheckpointPostgres, CheckpointBadger, CheckpointS3:
	default:
		return nil, fmt.Errorf("config.Load: unknown checkpoint backend %q", cfg.Checkpoint.Backend)
	}
	if cfg.Ledger.DefaultAcres <= 0 {
		return nil, fmt.Errorf("config.Load: ledger.default_acres must be positive, got %v", cfg.Ledger.DefaultAcres)
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		BaseURL:      v.GetString(prefix + ".base_url"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

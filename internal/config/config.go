package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultEnv            = "prod"
	defaultMigrationsDir  = "migrations"
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultSuggestTimeout = 30 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string
	Port           string
	DBPath         string
	MigrationsDir  string
	AutoMigrate    bool
	GeminiAPIKey   string
	GeminiModel    string
	SuggestTimeout time.Duration
	MetricsEnabled bool
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// Production should use real env injection.
	_ = loadDotEnv(".env")

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("port", defaultPort)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("migrations_dir", defaultMigrationsDir)
	v.SetDefault("auto_migrate", false)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", defaultGeminiModel)
	v.SetDefault("suggest_timeout", defaultSuggestTimeout)
	v.SetDefault("metrics_enabled", true)
	return v
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		Env:            strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		Port:           v.GetString("port"),
		DBPath:         v.GetString("db_path"),
		MigrationsDir:  v.GetString("migrations_dir"),
		AutoMigrate:    v.GetBool("auto_migrate"),
		GeminiAPIKey:   strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:    v.GetString("gemini_model"),
		SuggestTimeout: v.GetDuration("suggest_timeout"),
		MetricsEnabled: v.GetBool("metrics_enabled"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if cfg.SuggestTimeout <= 0 {
		cfg.SuggestTimeout = defaultSuggestTimeout
	}
	return cfg
}

// IsDev reports whether the service runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// ShouldMigrate reports whether migrations run at startup. Development always
// migrates.
func (c Config) ShouldMigrate() bool {
	return c.AutoMigrate || c.IsDev()
}

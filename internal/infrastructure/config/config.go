package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Store    StoreConfig    `mapstructure:"store"`
	CDN      CDNConfig      `mapstructure:"cdn"`
	Grocery  GroceryConfig  `mapstructure:"grocery"`
	CORS     CORSConfig     `mapstructure:"cors"`
	LogLevel string         `mapstructure:"log_level"`
}

// AppConfig describes the application itself.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GeminiConfig holds settings for the hosted generation API.
type GeminiConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects and configures the document-store backend.
// Backend "object" lists recipe documents under a prefix on disk;
// "table" scans a Redis-backed key-value table holding the
// attribute-tagged encoding.
type StoreConfig struct {
	Backend       string `mapstructure:"backend"`
	ObjectDir     string `mapstructure:"object_dir"`
	RecipesPrefix string `mapstructure:"recipes_prefix"`
	ScheduleKey   string `mapstructure:"schedule_key"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	TablePrefix   string `mapstructure:"table_prefix"`
}

// CDNConfig controls the best-effort cache invalidation after a schedule write.
type CDNConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	InvalidationURL string `mapstructure:"invalidation_url"`
}

// GroceryConfig holds display options for the aggregated grocery list.
type GroceryConfig struct {
	ShowEmptyGroups bool `mapstructure:"show_empty_groups"`
}

// CORSConfig holds the allowed browser origin.
type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// LoadConfig reads settings from .env, environment variables and defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside local development
		fmt.Println("Warning: .env file not found")
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("store.object_dir", "STORE_OBJECT_DIR")
	viper.BindEnv("store.recipes_prefix", "RECIPES_PREFIX")
	viper.BindEnv("store.schedule_key", "SCHEDULE_KEY")
	viper.BindEnv("store.redis_addr", "REDIS_ADDR")
	viper.BindEnv("store.redis_password", "REDIS_PASSWORD")
	viper.BindEnv("cdn.enabled", "CDN_INVALIDATION_ENABLED")
	viper.BindEnv("cdn.invalidation_url", "CDN_INVALIDATION_URL")
	viper.BindEnv("grocery.show_empty_groups", "SHOW_EMPTY_GROUPS")
	viper.BindEnv("cors.allowed_origin", "ALLOWED_ORIGIN")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	fmt.Println("Loading configuration",
		"gemini_api_key:", maskAPIKey(viper.GetString("gemini.api_key")),
		"store_backend:", viper.GetString("store.backend"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey shows only the first and last 4 characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "meals-api")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.max_tokens", 2048)
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("store.backend", "object")
	viper.SetDefault("store.object_dir", "data")
	viper.SetDefault("store.recipes_prefix", "json/recipes/")
	viper.SetDefault("store.schedule_key", "schedule.json")
	viper.SetDefault("store.redis_addr", "localhost:6379")
	viper.SetDefault("store.redis_db", 0)
	viper.SetDefault("store.table_prefix", "meals:recipes:")

	viper.SetDefault("cdn.enabled", false)
	viper.SetDefault("cdn.invalidation_url", "")

	viper.SetDefault("grocery.show_empty_groups", true)

	viper.SetDefault("cors.allowed_origin", "https://meals.stellation.one")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Store.Backend {
	case "object":
		if config.Store.ObjectDir == "" {
			return fmt.Errorf("store object dir is required for the object backend")
		}
	case "table":
		if config.Store.RedisAddr == "" {
			return fmt.Errorf("redis addr is required for the table backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	if config.CDN.Enabled && config.CDN.InvalidationURL == "" {
		return fmt.Errorf("cdn invalidation url is required when invalidation is enabled")
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CLIPPER_SERVER_PORT
const EnvPrefix = "CLIPPER"

// DefaultConfigFile is read when CLIPPER_CONFIG_FILE is unset
const DefaultConfigFile = "./config/settings.yaml"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := DefaultConfigFile
		if override := os.Getenv(EnvPrefix + "_CONFIG_FILE"); override != "" {
			configPath = override
		}
		configPath = filepath.Clean(configPath)

		// A missing file is fine; defaults and env vars still apply
		if _, err := os.Stat(configPath); err == nil {
			viper.SetConfigFile(configPath)
			if err := viper.ReadInConfig(); err != nil {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// reset clears viper state so Init can run again
func reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// IsProduction reports whether the configured environment is production
func IsProduction() bool {
	env := viper.GetString("environment")
	return env == "production" || env == "prod"
}

func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	switch fetcher := viper.GetString("media.fetcher"); fetcher {
	case "ytdlp", "youtube":
	default:
		return fmt.Errorf("unknown media fetcher %q", fetcher)
	}

	if err := validateProcessing(viper.GetDuration("processing.request_timeout"), viper.GetDuration("processing.stale_after")); err != nil {
		return err
	}

	if err := validateSecrets(); err != nil {
		return err
	}

	if viper.GetInt("features.max_concurrency") <= 0 {
		viper.Set("features.max_concurrency", 4)
	}

	if viper.GetInt("processing.list_limit") <= 0 {
		viper.Set("processing.list_limit", 100)
	}

	return nil
}

// validateProcessing rejects a stale threshold that could fail clips still
// inside their request deadline
func validateProcessing(requestTimeout, staleAfter time.Duration) error {
	if requestTimeout > 0 && staleAfter > 0 && staleAfter <= requestTimeout {
		return fmt.Errorf("processing.stale_after (%s) must exceed processing.request_timeout (%s)", staleAfter, requestTimeout)
	}
	return nil
}

var placeholders = []string{
	"YOUR_KEY_HERE",
	"YOUR_SECRET_HERE",
	"YOUR_API_KEY",
	"changeme",
	"CHANGEME",
	"",
}

func isPlaceholder(value string) bool {
	for _, p := range placeholders {
		if value == p {
			return true
		}
	}
	return false
}

// validateSecrets rejects placeholder credentials in production and warns otherwise
func validateSecrets() error {
	log := logging.WithComponent("config")

	if viper.GetString("auth.jwks_url") == "" && isPlaceholder(viper.GetString("auth.jwt_secret")) {
		if IsProduction() {
			return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
		}
		log.Warn("JWT secret is using a placeholder value - this is insecure!")
	}

	if viper.GetBool("auth.dev_auth_enabled") && IsProduction() {
		return fmt.Errorf("dev auth cannot be enabled in production")
	}

	if viper.GetString("media.fetcher") == "youtube" && isPlaceholder(viper.GetString("media.youtube_api_key")) {
		if IsProduction() {
			return fmt.Errorf("invalid YouTube API key: cannot use placeholder values in production")
		}
		log.Warn("YouTube API key is using a placeholder value")
	}

	if viper.GetBool("features.enable_hook_titles") && isPlaceholder(viper.GetString("ai.openai_api_key")) {
		log.Warn("hook title generation enabled without an OpenAI API key; canned outcome will be used")
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Media.Fetcher != "" && c.Media.Fetcher != "ytdlp" && c.Media.Fetcher != "youtube" {
		return fmt.Errorf("unknown media fetcher %q", c.Media.Fetcher)
	}

	if err := validateProcessing(c.Processing.RequestTimeout, c.Processing.StaleAfter); err != nil {
		return err
	}

	if c.Features.MaxConcurrency <= 0 {
		c.Features.MaxConcurrency = 4
	}

	if c.Processing.ListLimit <= 0 {
		c.Processing.ListLimit = 100
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 90*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/clipper.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", time.Hour)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.verbose", false)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.jwks_url", "")
	viper.SetDefault("auth.issuer", "clipper-api")
	viper.SetDefault("auth.token_ttl", 30*time.Minute)
	viper.SetDefault("auth.dev_auth_enabled", false)
	viper.SetDefault("auth.dev_auth_token", "")

	// Media defaults
	viper.SetDefault("media.fetcher", "ytdlp")
	viper.SetDefault("media.ytdlp_path", "yt-dlp")
	viper.SetDefault("media.youtube_api_key", "")
	viper.SetDefault("media.timeout", 30*time.Second)

	// Feature stage defaults
	viper.SetDefault("features.max_concurrency", 4)
	viper.SetDefault("features.stage_timeout", 15*time.Second)
	viper.SetDefault("features.enable_hook_titles", false)

	// AI defaults
	viper.SetDefault("ai.openai_api_key", "")
	viper.SetDefault("ai.openai_base_url", "")
	viper.SetDefault("ai.model", "gpt-3.5-turbo")

	// Processing defaults
	viper.SetDefault("processing.request_timeout", 60*time.Second)
	viper.SetDefault("processing.stale_after", 10*time.Minute)
	viper.SetDefault("processing.sweep_interval", time.Minute)
	viper.SetDefault("processing.list_limit", 100)

	// Storage defaults
	viper.SetDefault("storage.artifact_dir", "./data/artifacts")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]any{
		"clips_create": map[string]any{"rps": 1, "burst": 5},
		"default":      map[string]any{"rps": 10, "burst": 20},
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string             `mapstructure:"environment"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Media        MediaConfig        `mapstructure:"media"`
	Features     FeaturesConfig     `mapstructure:"features"`
	AI           AIConfig           `mapstructure:"ai"`
	Processing   ProcessingConfig   `mapstructure:"processing"`
	Storage      StorageConfig      `mapstructure:"storage"`
	RateLimiting RateLimitConfig    `mapstructure:"rate_limiting"`
	Security     SecurityConfig     `mapstructure:"security"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	Verbose               bool          `mapstructure:"verbose"`
}

// AuthConfig contains bearer token validation settings
type AuthConfig struct {
	// JWTSecret verifies HS256 tokens issued by the identity provider
	JWTSecret string `mapstructure:"jwt_secret"`
	// JWKSURL enables ES256 verification against a key set when set
	JWKSURL        string        `mapstructure:"jwks_url"`
	Issuer         string        `mapstructure:"issuer"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	DevAuthEnabled bool          `mapstructure:"dev_auth_enabled"`
	DevAuthToken   string        `mapstructure:"dev_auth_token"`
}

// MediaConfig selects and configures the source metadata fetcher
type MediaConfig struct {
	Fetcher       string        `mapstructure:"fetcher"` // "ytdlp" or "youtube"
	YtDlpPath     string        `mapstructure:"ytdlp_path"`
	YouTubeAPIKey string        `mapstructure:"youtube_api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// FeaturesConfig controls the feature stage executor
type FeaturesConfig struct {
	MaxConcurrency   int           `mapstructure:"max_concurrency"`
	StageTimeout     time.Duration `mapstructure:"stage_timeout"`
	EnableHookTitles bool          `mapstructure:"enable_hook_titles"`
}

// AIConfig contains settings for model-backed stages
type AIConfig struct {
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	Model         string `mapstructure:"model"`
}

// ProcessingConfig bounds clip creation and the stale clip sweep
type ProcessingConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	StaleAfter     time.Duration `mapstructure:"stale_after"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	ListLimit      int           `mapstructure:"list_limit"`
}

// StorageConfig contains artifact storage settings
type StorageConfig struct {
	ArtifactDir string `mapstructure:"artifact_dir"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool                    `mapstructure:"enabled"`
	Endpoints map[string]RateLimitRule `mapstructure:"endpoints"`
}

// RateLimitRule is a token bucket definition for one route group
type RateLimitRule struct {
	RPS   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

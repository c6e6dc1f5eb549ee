package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Environment selects runtime behavior. In "development" the full error
	// text of unexpected failures is returned to clients; everywhere else it
	// is replaced with a generic message.
	Environment string `mapstructure:"environment" validate:"required,oneof=development staging production"`

	// FrontendURL is used to build password-reset redirect links.
	FrontendURL string `mapstructure:"frontend_url" validate:"omitempty,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// MigrationsDir is the directory holding goose SQL migrations,
	// relative to the working directory of the server process.
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// AuthConfig contains all identity-provider settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// Token lifetimes, in minutes.
	TokenLifetimeMinutes        int `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	ResetTokenLifetimeMinutes   int `mapstructure:"reset_token_lifetime_minutes"   validate:"required,gt=0"`
}

// LLMConfig contains settings for the recommendation generator.
// The whole group is optional: without an API key the server runs with
// recommendation generation disabled.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
}

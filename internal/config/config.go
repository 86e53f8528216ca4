package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                   string   `mapstructure:"PORT"`
	Env                    string   `mapstructure:"ENV"`
	AnalysisBaseURL        string   `mapstructure:"ANALYSIS_BASE_URL"`
	AnalysisTimeoutSeconds int      `mapstructure:"ANALYSIS_TIMEOUT_SECONDS"`
	RAFBaseRate            float64  `mapstructure:"RAF_BASE_RATE"`
	SessionCacheSize       int      `mapstructure:"SESSION_CACHE_SIZE"`
	CORSOrigins            []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS           float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("ANALYSIS_TIMEOUT_SECONDS", 120)
	v.SetDefault("RAF_BASE_RATE", 1080.0)
	v.SetDefault("SESSION_CACHE_SIZE", 256)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("ANALYSIS_BASE_URL")
	v.BindEnv("ANALYSIS_TIMEOUT_SECONDS")
	v.BindEnv("RAF_BASE_RATE")
	v.BindEnv("SESSION_CACHE_SIZE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	if c.AnalysisBaseURL == "" {
		return fmt.Errorf("ANALYSIS_BASE_URL is required")
	}
	if !strings.HasPrefix(c.AnalysisBaseURL, "http://") && !strings.HasPrefix(c.AnalysisBaseURL, "https://") {
		return fmt.Errorf("ANALYSIS_BASE_URL must be an http(s) URL, got %q", c.AnalysisBaseURL)
	}
	if c.AnalysisTimeoutSeconds <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT_SECONDS must be positive, got %d", c.AnalysisTimeoutSeconds)
	}
	if c.RAFBaseRate <= 0 {
		return fmt.Errorf("RAF_BASE_RATE must be positive, got %g", c.RAFBaseRate)
	}
	if c.SessionCacheSize <= 0 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", c.SessionCacheSize)
	}
	return nil
}

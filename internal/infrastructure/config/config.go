package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	ONDC          ONDCConfig          `mapstructure:"ondc"`
	Platform      PlatformConfig      `mapstructure:"platform"`
	Retry         RetryConfig         `mapstructure:"retry"`
	Callback      CallbackConfig      `mapstructure:"callback"`
	Store         StoreConfig         `mapstructure:"store"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// ONDCConfig is this adapter's network identity as a BPP.
type ONDCConfig struct {
	BppID       string `mapstructure:"bpp_id"`
	BppURI      string `mapstructure:"bpp_uri"`
	Domain      string `mapstructure:"domain"`
	Country     string `mapstructure:"country"`
	City        string `mapstructure:"city"`
	CoreVersion string `mapstructure:"core_version"`
}

type PlatformConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	Version        string        `mapstructure:"version"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// RetryConfig governs platform-call retries inside the pipelines.
type RetryConfig struct {
	MaxAttempts  uint          `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	Multiplier   float64       `mapstructure:"multiplier"`
}

// CallbackConfig governs on_X delivery to the BAP.
type CallbackConfig struct {
	MaxAttempts    uint          `mapstructure:"max_attempts"`
	InitialDelay   time.Duration `mapstructure:"initial_delay"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// StoreConfig is the seller profile projected into fulfillment start blocks.
type StoreConfig struct {
	Name     string `mapstructure:"name"`
	GPS      string `mapstructure:"gps"`
	Locality string `mapstructure:"locality"`
	City     string `mapstructure:"city"`
	State    string `mapstructure:"state"`
	AreaCode string `mapstructure:"area_code"`
	Phone    string `mapstructure:"phone"`
	Email    string `mapstructure:"email"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableMetrics  bool   `mapstructure:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ONDC_BRIDGE")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ondc-bridge")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}
	if c.ONDC.BppID == "" {
		errs = append(errs, fmt.Errorf("ondc.bpp_id is required"))
	}
	if c.ONDC.BppURI == "" {
		errs = append(errs, fmt.Errorf("ondc.bpp_uri is required"))
	} else if _, err := url.ParseRequestURI(c.ONDC.BppURI); err != nil {
		errs = append(errs, fmt.Errorf("ondc.bpp_uri must be a valid URI: %w", err))
	}
	if c.Platform.BaseURL == "" {
		errs = append(errs, fmt.Errorf("platform.base_url is required"))
	}
	if c.Retry.MaxAttempts == 0 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be positive"))
	}
	if c.Callback.MaxAttempts == 0 {
		errs = append(errs, fmt.Errorf("callback.max_attempts must be positive"))
	}
	if c.Callback.AttemptTimeout <= 0 {
		errs = append(errs, fmt.Errorf("callback.attempt_timeout must be positive"))
	}

	env := os.Getenv("ENV")
	if env == "production" || env == "prod" {
		if c.Platform.ConsumerKey == "" || c.Platform.ConsumerSecret == "" {
			errs = append(errs, fmt.Errorf("platform credentials required in production"))
		}
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// ONDC identity defaults
	v.SetDefault("ondc.bpp_id", "bridge.bpp.example.com")
	v.SetDefault("ondc.bpp_uri", "https://bridge.bpp.example.com/api/v1")
	v.SetDefault("ondc.domain", "ONDC:RET10")
	v.SetDefault("ondc.country", "IND")
	v.SetDefault("ondc.city", "std:080")
	v.SetDefault("ondc.core_version", "1.2.0")

	// Platform defaults
	v.SetDefault("platform.base_url", "http://localhost:8088")
	v.SetDefault("platform.version", "wc/v3")
	v.SetDefault("platform.timeout", "30s")

	// Retry defaults
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_delay", "1s")
	v.SetDefault("retry.max_delay", "30s")
	v.SetDefault("retry.multiplier", 2.0)

	// Callback defaults
	v.SetDefault("callback.max_attempts", 3)
	v.SetDefault("callback.initial_delay", "5s")
	v.SetDefault("callback.attempt_timeout", "10s")

	// Store defaults
	v.SetDefault("store.name", "Commerce Store")
	v.SetDefault("store.gps", "12.956399,77.636803")
	v.SetDefault("store.locality", "Main Street")
	v.SetDefault("store.city", "Bengaluru")
	v.SetDefault("store.state", "Karnataka")
	v.SetDefault("store.area_code", "560076")
	v.SetDefault("store.phone", "9999999999")
	v.SetDefault("store.email", "store@example.com")

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_tracing", false)
}

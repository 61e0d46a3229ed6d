// Package config provides configuration management using Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	TLS        TLSConfig        `mapstructure:"tls"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // e.g., ["https://example.com", "*.sub.domain.tld"]
}

// Enabled returns true if CORS is configured with at least one allowed origin.
func (c *CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// ArchiveConfig holds satellite archive configuration.
type ArchiveConfig struct {
	Backend   string      `mapstructure:"backend"` // s3, azure
	Satellite string      `mapstructure:"satellite"`
	Product   string      `mapstructure:"product"`
	S3        S3Config    `mapstructure:"s3"`
	Azure     AzureConfig `mapstructure:"azure"`
}

// S3Config holds AWS S3 archive configuration. The NOAA Open Data buckets
// are public, so no credentials are configured; listing is anonymous.
type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // override for testing
}

// AzureConfig holds Azure Blob archive configuration for the NOAA Open Data
// mirror, e.g. https://goeseuwest.blob.core.windows.net/.
type AzureConfig struct {
	ServiceURL string `mapstructure:"service_url"`
}

// FetchConfig holds scan download configuration.
type FetchConfig struct {
	// Domain is the virtual-hosted-style archive domain; objects are
	// addressed as https://{satellite}.{domain}/{object-path}.
	Domain     string        `mapstructure:"domain"`
	Timeout    time.Duration `mapstructure:"timeout"`
	ScratchDir string        `mapstructure:"scratch_dir"` // empty: system temp dir
}

// ClassifierConfig holds cloud classification parameters.
type ClassifierConfig struct {
	IRBand       string   `mapstructure:"ir_band"`
	VisBands     []string `mapstructure:"vis_bands"`
	IRThreshold  float64  `mapstructure:"ir_threshold"`  // Kelvin
	VisThreshold float64  `mapstructure:"vis_threshold"` // reflectance fraction
}

// TLSConfig holds TLS/CertMagic configuration.
type TLSConfig struct {
	Enabled  bool      `mapstructure:"enabled"`
	Domains  []string  `mapstructure:"domains"`
	Email    string    `mapstructure:"email"`
	CacheDir string    `mapstructure:"cache_dir"`
	Staging  bool      `mapstructure:"staging"` // Use Let's Encrypt staging
	DNS      DNSConfig `mapstructure:"dns"`
}

// DNSConfig holds Azure DNS provider configuration for DNS-01 challenges.
type DNSConfig struct {
	SubscriptionID    string `mapstructure:"subscription_id"`
	ResourceGroupName string `mapstructure:"resource_group_name"`
	ClientID          string `mapstructure:"client_id"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
}

// Defaults sets the default configuration values.
func Defaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.cors.allowed_origins", []string{})

	// Archive defaults: GOES-19 Cloud & Moisture Imagery on NOAA Open Data
	viper.SetDefault("archive.backend", "s3")
	viper.SetDefault("archive.satellite", "noaa-goes19")
	viper.SetDefault("archive.product", "ABI-L2-MCMIPC")
	viper.SetDefault("archive.s3.region", "us-east-1")

	// Fetch defaults
	viper.SetDefault("fetch.domain", "s3.amazonaws.com")
	viper.SetDefault("fetch.timeout", 5*time.Minute)

	// Classifier defaults
	viper.SetDefault("classifier.ir_band", "CMI_C13")
	viper.SetDefault("classifier.vis_bands", []string{"CMI_C02", "CMI_C03"})
	viper.SetDefault("classifier.ir_threshold", 280.0)
	viper.SetDefault("classifier.vis_threshold", 0.3)

	// TLS defaults
	viper.SetDefault("tls.enabled", false)
	viper.SetDefault("tls.cache_dir", "./.certmagic")
	viper.SetDefault("tls.staging", false)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// Load loads configuration from environment and config file.
func Load(configPath string) (*Config, error) {
	Defaults()

	// Environment variable binding
	viper.SetEnvPrefix("NIMBUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/nimbus")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Archive.Satellite == "" {
		return fmt.Errorf("archive satellite is required")
	}
	if c.Archive.Product == "" {
		return fmt.Errorf("archive product is required")
	}

	switch c.Archive.Backend {
	case "s3":
		if c.Archive.S3.Region == "" {
			return fmt.Errorf("S3 region is required")
		}
	case "azure":
		if c.Archive.Azure.ServiceURL == "" {
			return fmt.Errorf("azure service URL is required")
		}
	default:
		return fmt.Errorf("unknown archive backend: %s", c.Archive.Backend)
	}

	if c.Fetch.Domain == "" {
		return fmt.Errorf("fetch domain is required")
	}

	if c.TLS.Enabled {
		if len(c.TLS.Domains) == 0 {
			return fmt.Errorf("TLS enabled but no domains specified")
		}
		if c.TLS.Email == "" {
			return fmt.Errorf("TLS enabled but no email specified")
		}
	}

	return nil
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

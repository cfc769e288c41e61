// Package config provides configuration management for the citation service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads.
const EnvPrefix = "CITATION"

// Config holds all configuration for the citation service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Sources contains the metadata source configurations.
	Sources SourcesConfig `mapstructure:"sources"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP API port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is how long keep-alive connections stay open.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RequestTimeout bounds one citation request including its upstream call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// MaxIdentifierLength is the longest identifier accepted by the API.
	MaxIdentifierLength int `mapstructure:"max_identifier_length"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr, file path).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace"`
}

// SourcesConfig holds configuration for all metadata sources.
type SourcesConfig struct {
	// UserAgent is the default User-Agent for the API sources.
	UserAgent string `mapstructure:"user_agent"`
	// Crossref serves DOI and DOI URL identifiers.
	Crossref SourceConfig `mapstructure:"crossref"`
	// PubMed serves PMID identifiers.
	PubMed SourceConfig `mapstructure:"pubmed"`
	// GoogleBooks serves books.google URLs.
	GoogleBooks SourceConfig `mapstructure:"google_books"`
	// SemanticScholar serves S2CID identifiers.
	SemanticScholar SourceConfig `mapstructure:"semantic_scholar"`
	// Web serves every other http(s) URL.
	Web SourceConfig `mapstructure:"web"`
}

// SourceConfig holds configuration for a single metadata source.
type SourceConfig struct {
	// Enabled controls whether this source serves requests.
	Enabled bool `mapstructure:"enabled"`
	// APIKey is loaded from the environment only, e.g. CITATION_SOURCES_PUBMED_API_KEY.
	APIKey string `mapstructure:"-"`
	// BaseURL is the API base URL. Unused by the web source.
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the timeout for one upstream call.
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the token bucket size.
	BurstSize int `mapstructure:"burst_size"`
	// UserAgent overrides SourcesConfig.UserAgent for this source.
	UserAgent string `mapstructure:"user_agent"`
	// Mailto joins the Crossref polite pool.
	Mailto string `mapstructure:"mailto"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from a .env file, environment variables and an
// optional config.yaml found in the standard search paths.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file. An empty path searches the
// standard locations and tolerates a missing file; an explicit path must exist.
func LoadFrom(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/citation-service")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets use mapstructure:"-" and never come from config files.
	loadSecrets(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadSecrets populates secret fields exclusively from environment variables.
func loadSecrets(cfg *Config) {
	cfg.Sources.PubMed.APIKey = os.Getenv(EnvPrefix + "_SOURCES_PUBMED_API_KEY")
	cfg.Sources.GoogleBooks.APIKey = os.Getenv(EnvPrefix + "_SOURCES_GOOGLE_BOOKS_API_KEY")
	cfg.Sources.SemanticScholar.APIKey = os.Getenv(EnvPrefix + "_SOURCES_SEMANTIC_SCHOLAR_API_KEY")
}

// sourceKeys are the config keys under "sources", one per metadata source.
var sourceKeys = []string{"crossref", "pubmed", "google_books", "semantic_scholar", "web"}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "45s")
	v.SetDefault("server.max_identifier_length", 2048)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "citation_service")

	v.SetDefault("sources.user_agent", "Helixir-CitationService/1.0")

	// AutomaticEnv only reaches keys viper already knows, so every optional
	// per-source string gets an empty default.
	for _, name := range sourceKeys {
		for _, field := range []string{"base_url", "user_agent", "mailto"} {
			v.SetDefault("sources."+name+"."+field, "")
		}
	}

	// Crossref asks clients to stay well under 50 req/s.
	v.SetDefault("sources.crossref.enabled", true)
	v.SetDefault("sources.crossref.base_url", "https://api.crossref.org")
	v.SetDefault("sources.crossref.timeout", "30s")
	v.SetDefault("sources.crossref.rate_limit", 50.0)
	v.SetDefault("sources.crossref.burst_size", 50)
	v.SetDefault("sources.crossref.mailto", "")

	v.SetDefault("sources.pubmed.enabled", true)
	v.SetDefault("sources.pubmed.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("sources.pubmed.timeout", "30s")
	v.SetDefault("sources.pubmed.rate_limit", 3.0) // NCBI recommends max 3 req/sec without API key
	v.SetDefault("sources.pubmed.burst_size", 3)

	v.SetDefault("sources.google_books.enabled", true)
	v.SetDefault("sources.google_books.base_url", "https://www.googleapis.com/books/v1")
	v.SetDefault("sources.google_books.timeout", "30s")
	v.SetDefault("sources.google_books.rate_limit", 10.0)
	v.SetDefault("sources.google_books.burst_size", 10)

	v.SetDefault("sources.semantic_scholar.enabled", true)
	v.SetDefault("sources.semantic_scholar.base_url", "https://api.semanticscholar.org/graph/v1")
	v.SetDefault("sources.semantic_scholar.timeout", "30s")
	v.SetDefault("sources.semantic_scholar.rate_limit", 1.0)
	v.SetDefault("sources.semantic_scholar.burst_size", 5)

	v.SetDefault("sources.web.enabled", true)
	v.SetDefault("sources.web.timeout", "10s")
	v.SetDefault("sources.web.rate_limit", 20.0)
	v.SetDefault("sources.web.burst_size", 20)
	v.SetDefault("sources.web.user_agent", "Mozilla/5.0 (compatible; CitationBot/1.0; +https://helixir.io/bot)")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort == c.Server.HTTPPort {
		return fmt.Errorf("metrics port must differ from HTTP port (%d)", c.Server.HTTPPort)
	}
	if c.Server.MaxIdentifierLength <= 0 {
		return fmt.Errorf("max_identifier_length must be positive")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.Server.WriteTimeout > 0 && c.Server.RequestTimeout > c.Server.WriteTimeout {
		return fmt.Errorf("request_timeout (%s) must not exceed write_timeout (%s)",
			c.Server.RequestTimeout, c.Server.WriteTimeout)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /: %q", c.Metrics.Path)
	}

	for _, src := range c.Sources.named() {
		if err := src.config.validate(); err != nil {
			return fmt.Errorf("sources.%s: %w", src.name, err)
		}
	}

	return nil
}

type namedSource struct {
	name   string
	config SourceConfig
}

func (s *SourcesConfig) named() []namedSource {
	return []namedSource{
		{"crossref", s.Crossref},
		{"pubmed", s.PubMed},
		{"google_books", s.GoogleBooks},
		{"semantic_scholar", s.SemanticScholar},
		{"web", s.Web},
	}
}

func (s SourceConfig) validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	if s.BurstSize < 0 {
		return fmt.Errorf("burst_size must not be negative")
	}
	if s.BaseURL != "" {
		u, err := url.Parse(s.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid base_url: %q", s.BaseURL)
		}
	}
	return nil
}

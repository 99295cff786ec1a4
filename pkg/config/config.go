package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// store backends
const (
	StoreSQLite = "sqlite"
	StoreRemote = "remote"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen    string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		PageSize  int           `yaml:"page_size" json:"page_size" jsonschema:"default=100,minimum=1,description=Articles shown on the list page"`
		Timezone  string        `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=Time zone for article dates"`
		StaticDir string        `yaml:"static_dir" json:"static_dir" jsonschema:"description=Directory with app icons served under /icons"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Store struct {
		Type string `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=remote,description=Record store backend"`
	} `yaml:"store" json:"store" jsonschema:"description=Record store selection"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsfeed.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=SQLite database configuration"`

	Remote RemoteConfig `yaml:"remote" json:"remote" jsonschema:"description=Hosted record store configuration"`

	App AppConfig `yaml:"app" json:"app" jsonschema:"description=Web app manifest settings"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Ingest scheduler configuration"`

	Feeds []FeedConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Feeds to ingest articles from"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for machine scoring"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`
}

// RemoteConfig holds the hosted record store settings
type RemoteConfig struct {
	URL     string        `yaml:"url" json:"url" jsonschema:"description=Record store base URL"`
	APIKey  string        `yaml:"api_key" json:"api_key" jsonschema:"description=Record store API key (can use environment variable)"`
	Table   string        `yaml:"table" json:"table" jsonschema:"default=article,description=Articles table name"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
}

// AppConfig holds the manifest settings
type AppConfig struct {
	Name            string `yaml:"name" json:"name" jsonschema:"default=News Feed,description=App display name"`
	ShortName       string `yaml:"short_name" json:"short_name" jsonschema:"default=NewsFeed,description=App short name"`
	BackgroundColor string `yaml:"background_color" json:"background_color" jsonschema:"default=#fff,description=Splash background color"`
}

// ScheduleConfig holds ingest scheduling settings
type ScheduleConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Feed update interval"`
	MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum feeds processed concurrently"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
}

// FeedConfig is a single feed to ingest
type FeedConfig struct {
	URL         string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Publication string `yaml:"publication" json:"publication" jsonschema:"description=Publication name shown on articles"`
}

// LLMConfig holds LLM configuration for machine scoring. Scoring is off when model is empty.
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini), empty disables scoring"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Fill empty summaries from extracted page content"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=NewsFeed/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// setDefaults fills in zero values
func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.PageSize == 0 {
		c.Server.PageSize = 100
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "UTC"
	}

	if c.Store.Type == "" {
		c.Store.Type = StoreSQLite
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:newsfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Remote.Table == "" {
		c.Remote.Table = "article"
	}
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = 10 * time.Second
	}

	if c.App.Name == "" {
		c.App.Name = "News Feed"
	}
	if c.App.ShortName == "" {
		c.App.ShortName = "NewsFeed"
	}
	if c.App.BackgroundColor == "" {
		c.App.BackgroundColor = "#fff"
	}

	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 30 * time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.FetchTimeout == 0 {
		c.Schedule.FetchTimeout = 30 * time.Second
	}

	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "NewsFeed/1.0"
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.PageSize < 1 {
		return fmt.Errorf("server.page_size must be at least 1")
	}
	if _, err := time.LoadLocation(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("server.timezone %q: %w", cfg.Server.Timezone, err)
	}

	switch cfg.Store.Type {
	case StoreSQLite:
	case StoreRemote:
		if cfg.Remote.URL == "" {
			return fmt.Errorf("remote.url is required for remote store")
		}
	default:
		return fmt.Errorf("store.type must be %q or %q, got %q", StoreSQLite, StoreRemote, cfg.Store.Type)
	}

	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if cfg.Schedule.FetchTimeout < time.Second {
		return fmt.Errorf("schedule.fetch_timeout must be at least 1 second")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPageSize returns the number of articles on the list page
func (c *Config) GetPageSize() int {
	return c.Server.PageSize
}

// Location returns the time zone for rendering dates, UTC if the zone can't be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetStaticDir returns the directory icons are served from, empty when not configured
func (c *Config) GetStaticDir() string {
	return c.Server.StaticDir
}

// GetAppConfig returns the manifest settings
func (c *Config) GetAppConfig() AppConfig {
	return c.App
}

// LLMEnabled reports whether machine scoring is configured
func (c *Config) LLMEnabled() bool {
	return c.LLM.Model != ""
}

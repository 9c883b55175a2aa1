package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath    = "config.yaml"
	defaultTemplatesPath = "templates.yaml"
	defaultBaseURL       = "https://api.dailymotion.com"
	defaultTimeout       = 30 * time.Minute
	defaultChannel       = "news"
	defaultOutputFormat  = "yaml"
	defaultVideoFields   = "id,title,channel,url,status,published"
	defaultListFields    = "id,title,url,created_time"
	defaultUserFields    = "id,screenname,username,url"

	passwordSecret  = "dailymotion-password"
	apiSecretSecret = "dailymotion-api-secret"
)

type Config struct {
	Username   string `yaml:"-"`
	Password   string `yaml:"-"`
	APIKey     string `yaml:"-"`
	APISecret  string `yaml:"-"`
	ProxyURL   string `yaml:"-"`
	GCPProject string `yaml:"-"`

	API       APIConfig       `yaml:"api"`
	Publish   PublishConfig   `yaml:"publish"`
	Fields    FieldsConfig    `yaml:"fields"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type PublishConfig struct {
	Channel string   `yaml:"channel"`
	Tags    []string `yaml:"tags"`
	Private bool     `yaml:"private"`
}

type FieldsConfig struct {
	Video  string `yaml:"video"`
	Videos string `yaml:"videos"`
	User   string `yaml:"user"`
}

type TemplatesConfig struct {
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // "yaml" or "json"
}

// Load reads .env, the environment and config.yaml, in that order. Secrets
// missing from the environment are looked up in Secret Manager when
// GOOGLE_CLOUD_PROJECT is set.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Username:   os.Getenv("DAILYMOTION_USERNAME"),
		Password:   os.Getenv("DAILYMOTION_PASSWORD"),
		APIKey:     os.Getenv("DAILYMOTION_API_KEY"),
		APISecret:  os.Getenv("DAILYMOTION_API_SECRET"),
		ProxyURL:   os.Getenv("DAILYMOTION_PROXY"),
		GCPProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	if err := loadYAMLConfig(cfg, getEnvOrDefault("DMPUBLISH_CONFIG", defaultConfigPath)); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := resolveSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No config file found, using defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(cfg)
	applyPublishDefaults(cfg)
	applyFieldsDefaults(cfg)
	applyTemplatesDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applyAPIDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultTimeout
	}
}

func applyPublishDefaults(cfg *Config) {
	if cfg.Publish.Channel == "" {
		cfg.Publish.Channel = defaultChannel
	}
}

func applyFieldsDefaults(cfg *Config) {
	if cfg.Fields.Video == "" {
		cfg.Fields.Video = defaultVideoFields
	}
	if cfg.Fields.Videos == "" {
		cfg.Fields.Videos = defaultListFields
	}
	if cfg.Fields.User == "" {
		cfg.Fields.User = defaultUserFields
	}
}

func applyTemplatesDefaults(cfg *Config) {
	if cfg.Templates.Path == "" {
		cfg.Templates.Path = defaultTemplatesPath
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = defaultOutputFormat
	}
}

// MissingCredentials names the environment variables still empty after
// loading.
func (c *Config) MissingCredentials() []string {
	var missing []string
	for _, field := range []struct {
		env   string
		value string
	}{
		{"DAILYMOTION_USERNAME", c.Username},
		{"DAILYMOTION_PASSWORD", c.Password},
		{"DAILYMOTION_API_KEY", c.APIKey},
		{"DAILYMOTION_API_SECRET", c.APISecret},
	} {
		if field.value == "" {
			missing = append(missing, field.env)
		}
	}
	return missing
}

func (c *Config) Validate() error {
	if missing := c.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

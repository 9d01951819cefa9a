// Package config loads the service configuration.
//
// Values are resolved in this order, later sources winning:
//
//  1. built-in defaults
//  2. the optional YAML file
//  3. environment variables named by the `env` struct tag
//
// Before reading the environment, .env files are loaded: the file named by
// ENV_FILE if set, otherwise .env.local followed by .env. godotenv never
// overrides variables already present in the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config.yml"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address" env:"SERVER_ADDRESS"`
	Debug   bool   `yaml:"debug" env:"GIN_DEBUG"`
}

// ScraperConfig configures the headless browser fetch of the results page.
type ScraperConfig struct {
	URL         string `yaml:"url" env:"POWERBALL_URL"`
	BrowserPath string `yaml:"browser_path" env:"BROWSER_PATH"`
	// NavigationTimeout of zero leaves the browser library default in place.
	NavigationTimeout time.Duration `yaml:"navigation_timeout" env:"NAVIGATION_TIMEOUT"`
	WindowWidth       int           `yaml:"window_width" env:"BROWSER_WINDOW_WIDTH"`
	WindowHeight      int           `yaml:"window_height" env:"BROWSER_WINDOW_HEIGHT"`
}

// GeneratorConfig configures the text generation service.
type GeneratorConfig struct {
	APIKey      string  `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	BaseURL     string  `yaml:"base_url" env:"GENERATOR_BASE_URL"`
	Model       string  `yaml:"model" env:"GENERATOR_MODEL"`
	MaxTokens   int64   `yaml:"max_tokens" env:"GENERATOR_MAX_TOKENS"`
	Temperature float64 `yaml:"temperature" env:"GENERATOR_TEMPERATURE"`
}

// LogConfig configures google/logger.
type LogConfig struct {
	File    string `yaml:"file" env:"LOG_FILE"`
	Verbose bool   `yaml:"verbose" env:"LOG_VERBOSE"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Address: ":8000",
		},
		Scraper: ScraperConfig{
			URL:          "https://www.powerball.com/",
			WindowWidth:  1920,
			WindowHeight: 1080,
		},
		Generator: GeneratorConfig{
			BaseURL:     "https://api.anthropic.com/",
			Model:       "claude-sonnet-4-5",
			MaxTokens:   300,
			Temperature: 0.5,
		},
		Log: LogConfig{
			File: "app.log",
		},
	}
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnvOverrides(reflect.ValueOf(&cfg).Elem()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at request time.
// An empty API key is allowed: only generated articles need it.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if c.Scraper.URL == "" {
		return errors.New("scraper.url is required")
	}
	if c.Scraper.NavigationTimeout < 0 {
		return fmt.Errorf("scraper.navigation_timeout must not be negative, got %s", c.Scraper.NavigationTimeout)
	}
	if c.Scraper.WindowWidth <= 0 || c.Scraper.WindowHeight <= 0 {
		return fmt.Errorf("invalid browser window %dx%d", c.Scraper.WindowWidth, c.Scraper.WindowHeight)
	}
	if c.Generator.BaseURL == "" {
		return errors.New("generator.base_url is required")
	}
	if c.Generator.MaxTokens <= 0 {
		return fmt.Errorf("generator.max_tokens must be positive, got %d", c.Generator.MaxTokens)
	}
	if c.Generator.Temperature < 0 || c.Generator.Temperature > 1 {
		return fmt.Errorf("generator.temperature must be within [0, 1], got %g", c.Generator.Temperature)
	}
	return nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func applyEnvOverrides(v reflect.Value) error {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		val, ok := os.LookupEnv(name)
		if !ok || val == "" {
			continue
		}
		if err := setField(field, val); err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, val string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(val)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

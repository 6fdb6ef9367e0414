// Package config loads process settings from a file, the environment and flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"chatbot/internal/common/fsutil"
	"chatbot/pkg/types"
)

// Config holds runtime parameters for the server and the client commands.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	// Server
	Addr               string   `json:"addr" yaml:"addr" toml:"addr"`
	APIPrefix          string   `json:"api_prefix" yaml:"api_prefix" toml:"api_prefix"`
	FixturesDir        string   `json:"fixtures_dir" yaml:"fixtures_dir" toml:"fixtures_dir"`
	ChatDelay          string   `json:"chat_delay" yaml:"chat_delay" toml:"chat_delay"`
	ChatTimeoutSeconds int64    `json:"chat_timeout_seconds" yaml:"chat_timeout_seconds" toml:"chat_timeout_seconds"`
	MaxBodyBytes       int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins        []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	HTTPLogLevel       string   `json:"http_log_level" yaml:"http_log_level" toml:"http_log_level"`

	// Client
	APIBaseURL string `json:"api_base_url" yaml:"api_base_url" toml:"api_base_url"`
	// Chat is applied to the config store when a client session starts.
	Chat types.ChatConfigPatch `json:"chat" yaml:"chat,omitempty" toml:"chat"`

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Default values used by WithDefaults.
const (
	DefaultAddr       = ":8000"
	DefaultAPIPrefix  = "/api"
	DefaultAPIBaseURL = "http://localhost:8000/api"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// DiscoverNames are the file names Discover looks for, in order.
var DiscoverNames = []string{"chatbot.yaml", "chatbot.yml", "chatbot.json", "chatbot.toml"}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the first config file found in dir, if any.
func Discover(dir string) (string, bool) {
	return fsutil.FirstExisting(dir, DiscoverNames...)
}

// Defaults returns a Config with every defaulted field set.
func Defaults() Config {
	return Config{
		Addr:       DefaultAddr,
		APIPrefix:  DefaultAPIPrefix,
		APIBaseURL: DefaultAPIBaseURL,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// WithDefaults returns c with unspecified fields filled from Defaults.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.APIPrefix == "" {
		c.APIPrefix = d.APIPrefix
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = d.APIBaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	return c
}

// ChatDelayDuration parses ChatDelay; empty means no delay.
func (c Config) ChatDelayDuration() (time.Duration, error) {
	if c.ChatDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ChatDelay)
	if err != nil {
		return 0, fmt.Errorf("chat_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("chat_delay: must not be negative")
	}
	return d, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := c.ChatDelayDuration(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported %q (want console or json)", c.LogFormat)
	}
	if c.ChatTimeoutSeconds < 0 {
		return fmt.Errorf("chat_timeout_seconds: must not be negative")
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

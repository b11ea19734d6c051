// Package config loads optional langtour settings from a YAML or JSONC file.
//
// Every setting has a built-in default, so a configuration file is never
// required. When one is given, its format is chosen by extension:
//   - .yaml / .yml: parsed with gopkg.in/yaml.v3
//   - .json / .jsonc: comments and trailing commas stripped with
//     github.com/tidwall/jsonc, then parsed with encoding/json
//
// Fields missing from the file keep their defaults. Command-line flags are
// applied on top of the loaded values by the cli package.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/langtour/internal/fileio"
	"github.com/shinji-kodama/langtour/internal/model"
	"github.com/shinji-kodama/langtour/internal/wsclient"
)

// Config holds all file-configurable settings.
type Config struct {
	// File configures the fileio demo.
	File FileConfig `yaml:"file" json:"file"`

	// WebSocket configures the websocket demo.
	WebSocket WebSocketConfig `yaml:"websocket" json:"websocket"`

	// Lambda configures the lambda demo.
	Lambda LambdaConfig `yaml:"lambda" json:"lambda"`
}

// FileConfig holds the fileio demo settings.
type FileConfig struct {
	// Path is the file written and read back.
	Path string `yaml:"path" json:"path"`

	// Content is the exact text written.
	Content string `yaml:"content" json:"content"`
}

// WebSocketConfig holds the websocket demo settings.
type WebSocketConfig struct {
	// URL is the ws:// or wss:// endpoint.
	URL string `yaml:"url" json:"url"`

	// Message is the single text frame sent after the handshake.
	Message string `yaml:"message" json:"message"`

	// Timeout is a Go duration string (e.g., "10s") bounding the wait for
	// the first reply event. A string is used for both formats because
	// encoding/json has no native duration support.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// LambdaConfig holds the lambda demo settings.
type LambdaConfig struct {
	// Concurrency is the number of workers computing string lengths.
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		File: FileConfig{
			Path:    fileio.DefaultPath,
			Content: fileio.DefaultContent,
		},
		WebSocket: WebSocketConfig{
			URL:     wsclient.DefaultURL,
			Message: wsclient.DefaultMessage,
			Timeout: wsclient.DefaultTimeout.String(),
		},
		Lambda: LambdaConfig{
			Concurrency: 1,
		},
	}
}

// Load reads path and overlays its values on Default. An empty path
// returns the defaults unchanged. The result is validated before it is
// returned.
//
// Every failure is a CLIError with ExitConfigError.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// decode parses data into cfg according to the extension of path.
// Decoding into an already populated struct keeps defaults for fields the
// file does not mention.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		// An empty YAML document decodes to io.EOF; treat it as "no overrides".
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(cfg)

	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)

	default:
		return fmt.Errorf("unsupported config format %q (valid: .yaml, .yml, .json, .jsonc)", ext)
	}
}

// Validate checks the settings for values no demo can run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File.Path) == "" {
		return fmt.Errorf("file.path must not be empty")
	}

	u, err := url.Parse(c.WebSocket.URL)
	if err != nil {
		return fmt.Errorf("websocket.url %q is not a valid URL: %w", c.WebSocket.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("websocket.url %q must use the ws or wss scheme", c.WebSocket.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("websocket.url %q has no host", c.WebSocket.URL)
	}

	if _, err := c.WebSocket.TimeoutDuration(); err != nil {
		return err
	}

	if c.Lambda.Concurrency < 1 {
		return fmt.Errorf("lambda.concurrency must be at least 1, got %d", c.Lambda.Concurrency)
	}
	return nil
}

// TimeoutDuration parses Timeout. The duration must be positive.
func (w WebSocketConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(w.Timeout)
	if err != nil {
		return 0, fmt.Errorf("websocket.timeout %q is not a valid duration: %w", w.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("websocket.timeout must be positive, got %s", d)
	}
	return d, nil
}

// Package config holds the persistent client configuration and the
// static API endpoint map.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Logical endpoint paths, fixed relative to the configured base URL.
const (
	EndpointGallery = "/api/gallery"
	EndpointEvents  = "/api/events"
	EndpointUpload  = "/api/upload"

	// Admin moderation namespace. Requires an admin token on the backend.
	EndpointAdminApprove = "/api/admin/approve"
	EndpointAdminReject  = "/api/admin/reject"
	EndpointAdminDelete  = "/api/admin/media"
)

// DefaultBaseURL is used when neither the environment nor the config
// file provides one. The backend is usually exposed through an ngrok
// tunnel during events.
const DefaultBaseURL = "https://snapfest-api.example.com"

// DefaultHeaders returns headers attached to every API request.
// The ngrok header suppresses the tunnel's interstitial warning page,
// which would otherwise be returned instead of JSON.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                 "snapfest-gallery/1.0",
		"ngrok-skip-browser-warning": "true",
	}
}

// Config is the persistent application configuration.
type Config struct {
	BaseURL    string `json:"base_url"`
	AdminToken string `json:"admin_token,omitempty"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds gallery view preferences that survive restarts.
type UIConfig struct {
	PageSize int    `json:"page_size"`
	Filter   string `json:"filter"` // "all", "featured", "images", "videos"
	Sort     string `json:"sort"`   // field,direction
	Columns  int    `json:"columns"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		UI: UIConfig{
			PageSize: 24,
			Filter:   "all",
			Sort:     "date,desc",
			Columns:  3,
		},
	}
}

// Path returns the path to the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".snapfest", "config.json")
}

// Load reads config from disk, or returns defaults. Environment
// variables override whatever the file says.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err == nil {
		var fileCfg Config
		if jsonErr := json.Unmarshal(data, &fileCfg); jsonErr == nil {
			cfg = &fileCfg
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Restrictive permissions: the file may contain an admin token.
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SNAPFEST_API_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SNAPFEST_ADMIN_TOKEN"); v != "" {
		c.AdminToken = v
	}
	if v := os.Getenv("SNAPFEST_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.UI.PageSize = n
		}
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = def.UI.PageSize
	}
	if c.UI.Filter == "" {
		c.UI.Filter = def.UI.Filter
	}
	if c.UI.Sort == "" {
		c.UI.Sort = def.UI.Sort
	}
	if c.UI.Columns <= 0 {
		c.UI.Columns = def.UI.Columns
	}
}

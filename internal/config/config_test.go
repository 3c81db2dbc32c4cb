package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL == "" {
		t.Error("BaseURL empty")
	}
	if cfg.UI.PageSize != 24 {
		t.Errorf("PageSize = %d, want 24", cfg.UI.PageSize)
	}
	if cfg.UI.Sort != "date,desc" {
		t.Errorf("Sort = %q, want date,desc", cfg.UI.Sort)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SNAPFEST_API_URL", "https://tunnel.example")
	t.Setenv("SNAPFEST_ADMIN_TOKEN", "tok")
	t.Setenv("SNAPFEST_PAGE_SIZE", "48")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.BaseURL != "https://tunnel.example" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AdminToken != "tok" {
		t.Errorf("AdminToken = %q", cfg.AdminToken)
	}
	if cfg.UI.PageSize != 48 {
		t.Errorf("PageSize = %d", cfg.UI.PageSize)
	}
}

func TestApplyEnvRejectsBadPageSize(t *testing.T) {
	t.Setenv("SNAPFEST_PAGE_SIZE", "not a number")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.UI.PageSize != 24 {
		t.Errorf("PageSize = %d, want untouched 24", cfg.UI.PageSize)
	}
}

func TestApplyDefaultsFillsPartialConfig(t *testing.T) {
	cfg := &Config{BaseURL: "https://custom.example"}
	cfg.applyDefaults()

	if cfg.BaseURL != "https://custom.example" {
		t.Error("explicit BaseURL overwritten")
	}
	if cfg.UI.PageSize != 24 || cfg.UI.Filter != "all" || cfg.UI.Columns != 3 {
		t.Errorf("defaults not filled: %+v", cfg.UI)
	}
}

func TestDefaultHeaders(t *testing.T) {
	h := DefaultHeaders()
	if h["ngrok-skip-browser-warning"] != "true" {
		t.Error("tunnel warning suppression header missing")
	}
	if h["User-Agent"] == "" {
		t.Error("User-Agent missing")
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/passages/pkg/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "redis"
redis_addr = "cache:6380"

[map]
cache = false
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != store.BackendRedis || cfg.Store.RedisAddr != "cache:6380" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.RedisPrefix != "passages" {
		t.Errorf("unset key lost its default: %q", cfg.Store.RedisPrefix)
	}
	if cfg.Map.Cache {
		t.Error("map.cache = true, want false")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[store\nbackend = 1",
		"unknown key": "[store]\nbakend = \"file\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"~/data":    filepath.Join(home, "data"),
		"~":         home,
		"/abs/path": "/abs/path",
		"rel/~":     "rel/~",
		"":          "",
	}
	for in, want := range tests {
		if got := expandHome(in); got != want {
			t.Errorf("expandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/passages/pkg/store"
)

// Config is the contents of config.toml.
type Config struct {
	Store store.Config `toml:"store"`
	Map   MapConfig    `toml:"map"`
}

// MapConfig controls story map rendering.
type MapConfig struct {
	Cache bool `toml:"cache"`
}

func defaultConfig() Config {
	return Config{
		Store: store.DefaultConfig(),
		Map:   MapConfig{Cache: true},
	}
}

// loadConfig reads path over the defaults. A missing file yields the
// defaults; keys absent from the file keep their default values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}
	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

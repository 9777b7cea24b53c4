package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config stores repository-local settings, written at init and validated
// on open.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig is the [core] section of .wit/config.toml.
type CoreConfig struct {
	RepositoryFormatVersion int  `toml:"repositoryformatversion"`
	FileMode                bool `toml:"filemode"`
	Bare                    bool `toml:"bare"`
}

// DefaultConfig returns the config written by Init.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			RepositoryFormatVersion: 0,
			FileMode:                false,
			Bare:                    false,
		},
	}
}

func configPath(witDir string) string {
	return filepath.Join(witDir, "config.toml")
}

// readConfig reads and validates .wit/config.toml. A missing file is an
// error: a repository without config was not created by wit.
func readConfig(witDir string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath(witDir), &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if v := cfg.Core.RepositoryFormatVersion; v != 0 {
		return nil, fmt.Errorf("read config: unsupported repositoryformatversion %d", v)
	}
	return &cfg, nil
}

// writeConfig atomically writes .wit/config.toml.
func writeConfig(witDir string, cfg *Config) error {
	tmp, err := os.CreateTemp(witDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, configPath(witDir)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

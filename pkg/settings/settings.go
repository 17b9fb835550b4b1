// Package settings holds the external tool configuration: where VGAudioCli
// and vgmstream live, which runtime launches VGAudioCli, and which tool is
// preferred for decoding.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const appName = "nus3kit"

// Settings is the persisted tool configuration.
type Settings struct {
	// VGAudioCliPath locates the VGAudioCli executable.
	VGAudioCliPath string `toml:"vgaudio_cli_path"`
	// VGAudioCliPrepath is the runtime used to launch VGAudioCli (mono,
	// dotnet or wine on non-Windows platforms; empty on Windows).
	VGAudioCliPrepath string `toml:"vgaudio_cli_prepath"`
	// VgmstreamPath locates the vgmstream-cli executable.
	VgmstreamPath string `toml:"vgmstream_path"`
	// PreferVgmstreamDecode selects vgmstream over VGAudioCli when decoding
	// container entries.
	PreferVgmstreamDecode bool `toml:"prefer_vgmstream_decode"`
}

// Default returns the settings used before anything is configured.
func Default() Settings {
	return Settings{
		VGAudioCliPath:    defaultVGAudioCliPath,
		VGAudioCliPrepath: defaultPrepath(),
	}
}

// Load reads the settings file at path, filling missing keys with defaults.
// A missing file yields the defaults without error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	// Unmarshal over the defaults: keys present in the file override, keys
	// absent keep their default.
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings file at path, creating parent directories.
func (s Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns the settings file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(dir, appName, "settings.toml"), nil
}

// DefaultCacheRoot returns the scratch cache location under the user's cache
// directory.
func DefaultCacheRoot() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("finding cache directory: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

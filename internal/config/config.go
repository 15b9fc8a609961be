package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const appName = "theater"

type Config struct {
	AutoAdvance  AutoAdvanceConfig  `koanf:"autoadvance"`
	Playback     PlaybackConfig     `koanf:"playback"`
	Log          LogConfig          `koanf:"log"`
	Integrations IntegrationsConfig `koanf:"integrations"`
	State        StateConfig        `koanf:"state"`
	UI           UIConfig           `koanf:"ui"`
}

// AutoAdvanceConfig controls the countdown between playlist items.
type AutoAdvanceConfig struct {
	DelaySeconds *int `koanf:"delay_seconds"` // 0 advances immediately (default: 3)
}

// PlaybackConfig holds keyboard step sizes.
type PlaybackConfig struct {
	SkipSeconds int     `koanf:"skip_seconds"` // seek step for left/right (default: 10)
	VolumeStep  float64 `koanf:"volume_step"`  // volume step for up/down (0-1, default: 0.05)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/theater/theater.log
}

// IntegrationsConfig toggles desktop integrations.
type IntegrationsConfig struct {
	MPRIS         *bool `koanf:"mpris"`         // default: true
	Notifications *bool `koanf:"notifications"` // default: true
}

// StateConfig locates the preference database.
type StateConfig struct {
	Path string `koanf:"path"` // default: $XDG_DATA_HOME/theater/theater.db
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Icons   string `koanf:"icons"`   // "nerd", "unicode", or "none" (default: "unicode")
	Posters *bool  `koanf:"posters"` // default: true, needs Kitty graphics
}

// Load reads the config files in priority order (last wins). explicit, when
// set, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in paths
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.State.Path = expandPath(cfg.State.Path)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.UI.Icons = strings.ToLower(strings.TrimSpace(cfg.UI.Icons))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/theater/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// CountdownTicks returns the auto-advance countdown length.
func (c *Config) CountdownTicks() int {
	if c.AutoAdvance.DelaySeconds == nil {
		return 3
	}
	return max(0, *c.AutoAdvance.DelaySeconds)
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	// Apply defaults
	if cfg.SkipSeconds <= 0 {
		cfg.SkipSeconds = 10
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 1 {
		cfg.VolumeStep = 0.05
	}

	return cfg
}

// SkipDuration returns the seek step.
func (p PlaybackConfig) SkipDuration() time.Duration {
	return time.Duration(p.SkipSeconds) * time.Second
}

// LogLevel returns the configured level, or Info when unset or unknown.
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// LogFilePath returns the log file location, creating its directory.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0o755); err != nil {
			return "", err
		}
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// PostersEnabled reports whether audio thumbnails may be drawn.
func (c *Config) PostersEnabled() bool {
	return c.UI.Posters == nil || *c.UI.Posters
}

// MPRISEnabled reports whether the D-Bus media player interface is exposed.
func (c *Config) MPRISEnabled() bool {
	return c.Integrations.MPRIS == nil || *c.Integrations.MPRIS
}

// NotificationsEnabled reports whether track changes raise notifications.
func (c *Config) NotificationsEnabled() bool {
	return c.Integrations.Notifications == nil || *c.Integrations.Notifications
}

// IconStyle returns the configured icon set name, defaulting to unicode.
func (c *Config) IconStyle() string {
	switch c.UI.Icons {
	case "nerd", "unicode", "none":
		return c.UI.Icons
	default:
		return "unicode"
	}
}

package config

import (
	"errors"
	"time"

	"github.com/dshills/blotsync/internal/logging"
	"github.com/dshills/blotsync/internal/surface"
)

// Config holds every blotsync setting.
type Config struct {
	Sync    SyncConfig    `toml:"sync"`
	Logging LoggingConfig `toml:"logging"`
	Mirror  MirrorConfig  `toml:"mirror"`
	Script  ScriptConfig  `toml:"script"`
}

// SyncConfig configures scroll synchronization.
type SyncConfig struct {
	// MaxOptimizeIterations bounds one normalization pass.
	MaxOptimizeIterations int `toml:"max_optimize_iterations"`

	// Observe selects the changes a scroll subscribes to.
	Observe ObserveConfig `toml:"observe"`
}

// ObserveConfig mirrors surface.ObserveOptions.
type ObserveConfig struct {
	Attributes            bool `toml:"attributes"`
	CharacterData         bool `toml:"character_data"`
	CharacterDataOldValue bool `toml:"character_data_old_value"`
	ChildList             bool `toml:"child_list"`
	Subtree               bool `toml:"subtree"`
}

// Options converts the settings to observe options.
func (o ObserveConfig) Options() surface.ObserveOptions {
	return surface.ObserveOptions{
		Attributes:            o.Attributes,
		CharacterData:         o.CharacterData,
		CharacterDataOldValue: o.CharacterDataOldValue,
		ChildList:             o.ChildList,
		Subtree:               o.Subtree,
	}
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Prefix string `toml:"prefix"`
}

// ParsedLevel returns the configured level, or info when it is not valid.
func (l LoggingConfig) ParsedLevel() logging.Level {
	level, _ := logging.ParseLevel(l.Level)
	return level
}

// MirrorConfig configures file mirroring.
type MirrorConfig struct {
	// DebounceMS is how long the watcher waits for writes to settle.
	DebounceMS int `toml:"debounce_ms"`

	// BlockTag is the element tag used for mirrored paragraphs.
	BlockTag string `toml:"block_tag"`
}

// Debounce returns DebounceMS as a duration.
func (m MirrorConfig) Debounce() time.Duration {
	return time.Duration(m.DebounceMS) * time.Millisecond
}

// ScriptConfig configures the Lua runtime.
type ScriptConfig struct {
	// TimeoutMS bounds one script run. Zero disables the limit.
	TimeoutMS int `toml:"timeout_ms"`
}

// Timeout returns TimeoutMS as a duration.
func (s ScriptConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			MaxOptimizeIterations: 100,
			Observe: ObserveConfig{
				Attributes:            true,
				CharacterData:         true,
				CharacterDataOldValue: true,
				ChildList:             true,
				Subtree:               true,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "blotsync",
		},
		Mirror: MirrorConfig{
			DebounceMS: 50,
			BlockTag:   "p",
		},
		Script: ScriptConfig{
			TimeoutMS: 2000,
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, &ValidationError{Field: field, Message: msg})
	}

	if c.Sync.MaxOptimizeIterations < 1 {
		add("sync.max_optimize_iterations", "must be at least 1")
	}
	o := c.Sync.Observe
	if !o.ChildList && !o.Attributes && !o.CharacterData && !o.CharacterDataOldValue {
		add("sync.observe", "must select at least one change type")
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		add("logging.level", "must be one of debug, info, warn, error")
	}
	if c.Mirror.DebounceMS < 0 {
		add("mirror.debounce_ms", "must not be negative")
	}
	if c.Mirror.BlockTag == "" {
		add("mirror.block_tag", "must not be empty")
	}
	if c.Script.TimeoutMS < 0 {
		add("script.timeout_ms", "must not be negative")
	}
	return errors.Join(errs...)
}

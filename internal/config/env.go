package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetter applies one environment value to the config.
type envSetter func(cfg *Config, value string) error

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]envSetter{
	"BLOTSYNC_LOG_LEVEL": func(cfg *Config, v string) error {
		cfg.Logging.Level = v
		return nil
	},
	"BLOTSYNC_LOG_PREFIX": func(cfg *Config, v string) error {
		cfg.Logging.Prefix = v
		return nil
	},
	"BLOTSYNC_MAX_OPTIMIZE_ITERATIONS": intSetter(func(cfg *Config, n int) {
		cfg.Sync.MaxOptimizeIterations = n
	}),
	"BLOTSYNC_MIRROR_DEBOUNCE_MS": intSetter(func(cfg *Config, n int) {
		cfg.Mirror.DebounceMS = n
	}),
	"BLOTSYNC_MIRROR_BLOCK_TAG": func(cfg *Config, v string) error {
		cfg.Mirror.BlockTag = strings.ToLower(v)
		return nil
	},
	"BLOTSYNC_SCRIPT_TIMEOUT_MS": intSetter(func(cfg *Config, n int) {
		cfg.Script.TimeoutMS = n
	}),
}

func intSetter(set func(cfg *Config, n int)) envSetter {
	return func(cfg *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		set(cfg, n)
		return nil
	}
}

// ApplyEnv overrides cfg with the mapped environment variables lookup
// finds. Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for name, set := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, name, v, err)
		}
	}
	return nil
}

// EnvNames returns the recognized environment variables, sorted.
func EnvNames() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

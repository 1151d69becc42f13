// SPDX-License-Identifier: MPL-2.0

// Package config assembles the effective settings for one resolution from
// three layers: hardcoded defaults, directives parsed out of the target
// script, and (when trusted) per-setting environment overrides.
package config

import (
	"auto-shebang/internal/directive"

	"github.com/spf13/viper"
)

// booleanKeys are the keys whose values must be "yes"/"no" (directives)
// or "1"/"0" (environment).
var booleanKeys = map[Key]bool{
	KeyFollowSymlinks:        true,
	KeyTrustEnv:              true,
	KeyUnsafeExpandProbeDirs: true,
}

// envOverridableKeys are the settings with an environment counterpart.
// KeyTrustEnv is intentionally absent.
var envOverridableKeys = []Key{
	KeyProbeDirs,
	KeySuffixes,
	KeyFollowSymlinks,
	KeySymlinkPriority,
	KeyUnsafeExpandProbeDirs,
}

// Build layers defaults, directives, and environment overrides into one
// immutable Config. Directives are applied before any environment variable
// other than HOME is consulted, so trust-env resolved from directives
// decides whether the environment layer participates at all. Building
// fails fast on the first invalid value.
func Build(directives []directive.Directive, env *EnvSnapshot) (*Config, error) {
	v := viper.New()
	v.SetDefault(string(KeyProbeDirs), DefaultProbeDirs)
	v.SetDefault(string(KeySuffixes), DefaultSuffixes)
	v.SetDefault(string(KeyFollowSymlinks), DefaultFollowSymlinks)
	v.SetDefault(string(KeySymlinkPriority), DefaultSymlinkPriority)
	v.SetDefault(string(KeyTrustEnv), DefaultTrustEnv)
	v.SetDefault(string(KeyUnsafeExpandProbeDirs), DefaultUnsafeExpand)

	// Directive layer, in scan order: a repeated key overwrites the earlier
	// occurrence, which gives last-occurrence-wins.
	for _, d := range directives {
		key := Key(d.Key)
		if err := validateLayer(key, d.Value, "directive"); err != nil {
			return nil, err
		}
		v.Set(d.Key, d.Value)
	}

	trustEnv := v.GetString(string(KeyTrustEnv)) == "yes"

	// Environment layer, only when the script trusts it.
	if trustEnv {
		for _, key := range envOverridableKeys {
			raw, ok := env.Lookup(EnvName(key))
			if !ok {
				continue
			}
			value := raw
			if booleanKeys[key] {
				mapped, err := mapEnvBoolean(key, raw)
				if err != nil {
					return nil, err
				}
				value = mapped
			} else if err := validateLayer(key, value, "environment"); err != nil {
				return nil, err
			}
			v.Set(string(key), value)
		}
	}

	cfg := &Config{
		TrustEnv: trustEnv,
		Home:     env.Home(),
	}

	cfg.ProbeDirs = SplitList(v.GetString(string(KeyProbeDirs)))
	cfg.Suffixes = ParseSuffixSpec(v.GetString(string(KeySuffixes)))
	cfg.FollowSymlinks = v.GetString(string(KeyFollowSymlinks)) == "yes"
	cfg.UnsafeExpandProbeDirs = v.GetString(string(KeyUnsafeExpandProbeDirs)) == "yes"

	priority, err := ParseSymlinkPriority(v.GetString(string(KeySymlinkPriority)))
	if err != nil {
		return nil, err
	}
	cfg.SymlinkPriority = priority

	if trustEnv {
		cfg.OverrideExe = env.Get(EnvOverrideExe)
		cfg.FallbackExe = env.Get(EnvFallbackExe)
	}

	// The debug flag is read regardless of trust-env, with the same strict
	// 1/0 grammar as the other environment booleans.
	if raw, ok := env.Lookup(EnvDebug); ok {
		switch raw {
		case "1":
			cfg.Debug = true
		case "0":
			cfg.Debug = false
		default:
			return nil, &InvalidBooleanError{Key: "debug", Value: raw, Source: "environment"}
		}
	}

	return cfg, nil
}

// validateLayer checks one layered value at its boundary. Enum and boolean
// literals are rejected here so resolution logic never sees them.
func validateLayer(key Key, value, source string) error {
	if booleanKeys[key] && value != "yes" && value != "no" {
		return &InvalidBooleanError{Key: key, Value: value, Source: source}
	}
	if key == KeySymlinkPriority {
		if _, err := ParseSymlinkPriority(value); err != nil {
			return err
		}
	}
	return nil
}

// mapEnvBoolean maps the environment boolean grammar (1/0) onto the
// directive grammar (yes/no).
func mapEnvBoolean(key Key, raw string) (string, error) {
	switch raw {
	case "1":
		return "yes", nil
	case "0":
		return "no", nil
	default:
		return "", &InvalidBooleanError{Key: key, Value: raw, Source: "environment"}
	}
}

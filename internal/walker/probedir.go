// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"auto-shebang/internal/config"
	"auto-shebang/internal/expand"
)

// ErrHomeNotSet is the sentinel error wrapped by HomeNotSetError.
var ErrHomeNotSet = errors.New("home directory not set")

// HomeNotSetError is returned when a tilde-rooted probe-dir token needs
// the home directory and the environment provides none.
type HomeNotSetError struct {
	Token string
}

// Error implements the error interface.
func (e *HomeNotSetError) Error() string {
	return fmt.Sprintf("probe dir %q requires the home directory, but HOME is not set", e.Token)
}

// Unwrap returns ErrHomeNotSet so callers can use errors.Is.
func (e *HomeNotSetError) Unwrap() error { return ErrHomeNotSet }

// ProbeDir is one probe-dir token after expansion, classified once per
// resolution.
type ProbeDir struct {
	// Token is the configured form, kept for diagnostics.
	Token string
	// Path is the expanded form: absolute, or relative to the walk level.
	Path string
	// Absolute marks tokens that do not depend on the walk level
	// (absolute after expansion, or tilde-rooted). They are probed once
	// per walk.
	Absolute bool
}

// ExpandProbeDirs expands every configured probe-dir token.
//
// Tilde expansion from the snapshot home directory is always active.
// $NAME/${NAME} expansion runs only when unsafe-expand-probe-dirs is set;
// otherwise such tokens stay literal, which simply never matches an
// existing directory later — not an error by itself. Expansion results are
// only ever used in join/stat contexts, so glob characters passing through
// unexpanded stay inert.
func ExpandProbeDirs(cfg *config.Config, env *config.EnvSnapshot) ([]ProbeDir, error) {
	out := make([]ProbeDir, 0, len(cfg.ProbeDirs))
	for _, token := range cfg.ProbeDirs {
		pd, err := expandToken(token, cfg, env)
		if err != nil {
			return nil, err
		}
		out = append(out, pd)
	}
	return out, nil
}

func expandToken(token string, cfg *config.Config, env *config.EnvSnapshot) (ProbeDir, error) {
	expanded := token
	tildeRooted := false

	if token == "~" || strings.HasPrefix(token, "~/") {
		if cfg.Home == "" {
			return ProbeDir{}, &HomeNotSetError{Token: token}
		}
		tildeRooted = true
		expanded = filepath.Join(cfg.Home, strings.TrimPrefix(token, "~"))
	}

	if cfg.UnsafeExpandProbeDirs {
		var err error
		expanded, err = expand.Expand(expanded, env.Get)
		if err != nil {
			return ProbeDir{}, fmt.Errorf("expanding probe dir %q: %w", token, err)
		}
	}

	return ProbeDir{
		Token:    token,
		Path:     expanded,
		Absolute: tildeRooted || filepath.IsAbs(expanded),
	}, nil
}

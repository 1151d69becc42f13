// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"log/slog"
	"path/filepath"

	"auto-shebang/internal/config"
)

type (
	// Label records which search origin a directory came from.
	Label int

	// Origin is a directory the ancestor walk starts from. At most two
	// exist per resolution: the script's own directory, and — when
	// follow-symlinks is on — the resolved physical file's directory.
	Origin struct {
		Dir   string
		Label Label
	}

	// CandidateChecker validates one candidate path. *Validator is the
	// production implementation.
	CandidateChecker interface {
		Check(path string) Verdict
	}

	// Walker runs the ordered candidate search.
	Walker struct {
		suffixes  config.SuffixSpec
		probeDirs []ProbeDir
		validator CandidateChecker
		logger    *slog.Logger
	}
)

const (
	// ScriptOrigin is the directory containing the script as invoked.
	ScriptOrigin Label = iota
	// ResolvedOrigin is the directory containing the symlink-chain-resolved
	// physical file.
	ResolvedOrigin
)

// String returns a human-readable origin label.
func (l Label) String() string {
	switch l {
	case ResolvedOrigin:
		return "resolved file"
	default:
		return "script"
	}
}

// New creates a Walker. A nil logger disables tracing.
func New(suffixes config.SuffixSpec, probeDirs []ProbeDir, validator CandidateChecker, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{
		suffixes:  suffixes,
		probeDirs: probeDirs,
		validator: validator,
		logger:    logger,
	}
}

// Walk searches the origins in the order given and returns the first valid
// candidate. The order is strict: origin, then ancestor level from the
// origin's directory up to and including the filesystem root, then
// probe-dir, then name. First match wins; nothing after it is evaluated.
func (w *Walker) Walk(name string, origins []Origin) (string, bool) {
	names := w.suffixes.Names(name)

	for oi, origin := range origins {
		w.logger.Debug("walking origin", "label", origin.Label.String(), "dir", origin.Dir)

		level := origin.Dir
		for levelIdx := 0; ; levelIdx++ {
			firstLevel := oi == 0 && levelIdx == 0

			for _, pd := range w.probeDirs {
				var base string
				if pd.Absolute {
					// Level-independent: probed once, at its ordinal
					// position during the first level of the first origin.
					if !firstLevel {
						continue
					}
					base = pd.Path
				} else {
					base = filepath.Join(level, pd.Path)
				}

				for _, candidateName := range names {
					candidate := filepath.Join(base, candidateName)
					verdict := w.validator.Check(candidate)
					w.logger.Debug("probe", "candidate", candidate, "verdict", verdict.String())
					if verdict == Valid {
						return candidate, true
					}
				}
			}

			parent := filepath.Dir(level)
			if parent == level {
				break
			}
			level = parent
		}
	}

	return "", false
}

// SPDX-License-Identifier: MPL-2.0

// Package engine is the resolution facade: one call runs the full pipeline
// from directive parsing to the ancestor walk and produces either a
// resolved interpreter path or a typed failure.
//
// The engine never exits the process, never writes to the streams, and
// reads no ambient environment state: the caller supplies an environment
// snapshot, the script text, and optionally a logger for debug tracing.
package engine

import (
	"log/slog"
	"os"
	"path/filepath"

	"auto-shebang/internal/config"
	"auto-shebang/internal/directive"
	"auto-shebang/internal/issue"
	"auto-shebang/internal/walker"
	"auto-shebang/pkg/fspath"
)

// Request carries everything one resolution needs.
type Request struct {
	// Name is the invocation name being resolved, e.g. "auto-python".
	Name string
	// ScriptPath is the path of the target script as given by the caller.
	ScriptPath string
	// ScriptText is the script content to scan for directives. Only the
	// directive window matters; callers may pass just the leading lines.
	ScriptText string
	// Environ is the environment snapshot, in os.Environ form.
	Environ []string
	// SelfPath overrides the engine binary path used for the self check.
	// Empty means os.Executable.
	SelfPath string
	// Logger receives debug traces. Nil disables tracing.
	Logger *slog.Logger
}

// Resolve runs the resolution pipeline. On success the returned Resolution
// holds the absolute interpreter path; on failure the error unwraps to one
// of the class sentinels, or to *TargetError for a rejected
// override/fallback path.
func Resolve(req Request) (*Resolution, error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	env := config.SnapshotEnviron(req.Environ)
	directives := directive.Parse(req.ScriptText, config.KnownKeys())

	cfg, err := config.Build(directives, env)
	if err != nil {
		return nil, configError(issue.NewErrorContext().
			WithOperation("build configuration").
			WithResource(req.ScriptPath).
			WithSuggestion("Check the auto-shebang-* directive lines of the script and any AUTO_SHEBANG_* environment variables").
			Wrap(err).
			BuildError())
	}

	logger.Debug("configuration resolved",
		"probe-dirs", cfg.ProbeDirs,
		"suffixes", cfg.Suffixes.String(),
		"follow-symlinks", cfg.FollowSymlinks,
		"symlink-priority", cfg.SymlinkPriority.String(),
		"trust-env", cfg.TrustEnv,
		"directives", len(directives))

	selfPath := req.SelfPath
	if selfPath == "" {
		selfPath, _ = os.Executable()
	}
	validator := walker.NewValidator(selfPath)

	// A trusted override short-circuits everything: its verdict is final
	// and the walk never runs.
	if cfg.OverrideExe != "" {
		logger.Debug("override set, skipping walk", "path", cfg.OverrideExe)
		return checkTarget("override", cfg.OverrideExe, validator, cfg)
	}

	origins, err := searchOrigins(req.ScriptPath, cfg, logger)
	if err != nil {
		return nil, err
	}

	probeDirs, err := walker.ExpandProbeDirs(cfg, env)
	if err != nil {
		return nil, configError(issue.WrapWithOperation(err, "expand probe dirs"))
	}

	w := walker.New(cfg.Suffixes, probeDirs, validator, logger)
	if path, ok := w.Walk(req.Name, origins); ok {
		return &Resolution{Path: path, Config: cfg}, nil
	}

	if cfg.FallbackExe != "" {
		logger.Debug("walk exhausted, trying fallback", "path", cfg.FallbackExe)
		return checkTarget("fallback", cfg.FallbackExe, validator, cfg)
	}

	return nil, &NotFoundError{
		Name:      req.Name,
		Script:    req.ScriptPath,
		Origins:   origins,
		ProbeDirs: cfg.ProbeDirs,
		Suffixes:  cfg.Suffixes,
	}
}

// searchOrigins produces the one or two walk origins in priority order.
func searchOrigins(scriptPath string, cfg *config.Config, logger *slog.Logger) ([]walker.Origin, error) {
	primary, err := fspath.ScriptDir(scriptPath)
	if err != nil {
		return nil, configError(issue.WrapWithOperation(err, "normalize script origin"))
	}
	origins := []walker.Origin{{Dir: primary, Label: walker.ScriptOrigin}}

	if !cfg.FollowSymlinks {
		return origins, nil
	}

	// Symlink introspection is required once follow-symlinks is on; any
	// failure here is a configuration error, never a silent downgrade to
	// single-origin search.
	absScript, err := filepath.Abs(scriptPath)
	if err != nil {
		return nil, configError(err)
	}
	target, err := fspath.ResolveChain(absScript)
	if err != nil {
		return nil, configError(issue.NewErrorContext().
			WithOperation("resolve script symlink chain").
			WithResource(scriptPath).
			WithSuggestion("Repair the symlink chain or set auto-shebang-follow-symlinks=no").
			Wrap(err).
			BuildError())
	}
	resolvedDir, err := fspath.ScriptDir(target)
	if err != nil {
		return nil, configError(issue.WrapWithOperation(err, "normalize resolved script origin"))
	}

	if resolvedDir == primary {
		// Not a file-level symlink (or one within the same directory):
		// walking the same ancestry twice cannot change the outcome.
		return origins, nil
	}

	resolved := walker.Origin{Dir: resolvedDir, Label: walker.ResolvedOrigin}
	if cfg.SymlinkPriority == config.RealFirst {
		origins = []walker.Origin{resolved, origins[0]}
	} else {
		origins = append(origins, resolved)
	}

	logger.Debug("dual-origin search",
		"first", origins[0].Dir,
		"second", origins[1].Dir,
		"priority", cfg.SymlinkPriority.String())

	return origins, nil
}

// checkTarget validates an explicitly configured interpreter path.
func checkTarget(source, path string, validator *walker.Validator, cfg *config.Config) (*Resolution, error) {
	verdict := validator.Check(path)
	if verdict == walker.Valid {
		return &Resolution{Path: path, Config: cfg}, nil
	}
	return nil, &TargetError{Source: source, Path: path, Verdict: verdict}
}

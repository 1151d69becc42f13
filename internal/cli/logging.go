// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"

	"auto-shebang/internal/config"
)

// debugEnabled reports whether the user asked for debug tracing. The flag
// is honored regardless of trust-env so a directive can never hide the
// trace of its own processing.
func debugEnabled() bool {
	return os.Getenv(config.EnvDebug) == "1"
}

// newLogger builds the slog logger backing the resolution trace. The charm
// handler writes styled lines to stderr; stdout stays reserved for the
// resolved path.
func newLogger(debug bool) *slog.Logger {
	opts := charmlog.Options{
		Prefix: "auto-shebang",
		Level:  charmlog.WarnLevel,
	}
	if debug {
		opts.Level = charmlog.DebugLevel
		opts.ReportTimestamp = true
	}
	return slog.New(charmlog.NewWithOptions(os.Stderr, opts))
}

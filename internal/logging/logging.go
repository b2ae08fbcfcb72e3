// =============================================================================
// kf2ate - Logging Module
// =============================================================================
//
// This module builds the go-kit logger used by every command. Log lines go to
// stderr so that standard output only ever carries CSV data.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error.
	Level string

	// Format is logfmt or json.
	Format string
}

// New returns a leveled logger writing to w. Log lines carry ts and caller.
func New(w io.Writer, opts Options) (log.Logger, error) {
	var logger log.Logger
	switch strings.ToLower(opts.Format) {
	case "", "logfmt":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	lvl, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	logger = level.NewFilter(logger, lvl)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

func parseLevel(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", s)
	}
}

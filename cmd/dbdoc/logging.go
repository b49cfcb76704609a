package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type logOptions struct {
	level  string
	format string
}

func addLogFlags(fs *pflag.FlagSet, o *logOptions) {
	fs.StringVar(&o.level, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&o.format, "log-format", "auto", "Log format: text, json, auto")
}

// newLogger builds the process logger and installs it as the slog default.
// The auto format is text on a terminal and JSON otherwise.
func newLogger(w io.Writer, o logOptions) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: use debug, info, warn or error", o.level)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	format := strings.ToLower(o.format)
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unsupported log format %q: use text, json or auto", o.format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// Package logging builds the structured logger shared by the commands.
// Logs go to stderr because stdout carries LSP traffic and command output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelOff silences the logger.
const LevelOff = "off"

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return log.InfoLevel, nil
	case LevelOff:
		return log.FatalLevel + 1, nil
	case "warning":
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: supported levels are debug, info, warn, error, off", level)
	}
	return lvl, nil
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "csscolor",
		ReportTimestamp: lvl == log.DebugLevel,
	}), nil
}

// Setup creates a logger writing to w, or to stderr when w is nil, and
// installs it as the package default.
func Setup(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger, err := New(w, level)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger, nil
}

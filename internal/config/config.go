// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateProgramLogger creates the logger for a program run. The terminal
// frontend draws on the console, informational records would tear the
// picture so only errors are logged unless debugging was requested.
func CreateProgramLogger(opts options.Program) *log.Logger {
	quiet := opts.Quiet || (opts.Frontend == options.Terminal && !opts.Disasm)
	return CreateLogger(opts.Debug, quiet)
}

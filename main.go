// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			runner.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateProgramLogger(opts)
	runner.PrintBanner(logger, opts, version, commit, date)

	r := runner.New(logger, os.Stdout)
	if err := r.Run(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}

		var fault *cpu.Fault
		if errors.As(err, &fault) {
			logger.Error("Machine fault",
				log.Hex("pc", fault.PC),
				log.Hex("opcode", fault.Opcode),
				log.Err(fault.Err))
		} else {
			logger.Error("Running failed", log.Err(err))
		}
		os.Exit(1)
	}
}

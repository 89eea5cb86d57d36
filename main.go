// SPDX-License-Identifier: MIT
package main

import (
	"os"

	"scope/cmd"
	"scope/internal/log"
	"scope/internal/tui"
	"scope/pkg/build"
)

// main is the entry point for the scope.
//
// 1. Startup:
//   - Initialize build information
//   - Parse command line arguments and load the configuration
//
// 2. Run:
//   - analyze: synthesize the signal, render it headlessly and print a report
//   - view: browse the signal in the terminal UI
//
// 3. Shutdown:
//   - Flush the logger
func main() {
	// ==================== STARTUP ====================

	// Development builds carry no linker flags; keep running with "unknown".
	if err := build.Initialize(); err != nil {
		log.Warnf("Build: %v", err)
	}

	inv, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// --help and --version are handled by cobra.
	if inv.Command == "" {
		return
	}

	log.SetLevel(inv.Config.Level())

	// ==================== RUN ====================

	switch inv.Command {
	case cmd.CommandAnalyze:
		err = cmd.RunAnalyze(os.Stdout, inv)
	case cmd.CommandView:
		err = runView(inv)
	}

	// ==================== SHUTDOWN ====================

	_ = log.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func runView(inv *cmd.Invocation) error {
	sc, err := cmd.NewScope(inv.Config)
	if err != nil {
		return err
	}
	return tui.Run(sc, inv.Config.Display.Locale)
}

// Package main is the entry point for the taskengine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func init() {
	// Load .env for API keys and broker URLs.
	_ = godotenv.Load()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taskengine"),
		kong.Description("Autonomous task-execution engine"),
		kongVars(),
	)

	if err := dispatch(ctx, &cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx *kong.Context, cli *CLI) error {
	switch ctx.Command() {
	case "run", "run <task>":
		return runTask(&cli.Run)
	case "plan validate <file>":
		return validatePlanFile(cli.Plan.Validate.File)
	case "plan inspect <file>":
		return inspectPlanFile(cli.Plan.Inspect.File)
	case "version":
		fmt.Printf("taskengine version %s (commit: %s, built: %s)\n", version, commit, buildTime)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", ctx.Command())
	}
}

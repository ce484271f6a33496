// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a task through the autonomous loop"`
	Plan    PlanCmd    `cmd:"" help:"Work with plan files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// RunCmd executes a task.
type RunCmd struct {
	Task      string `arg:"" optional:"" help:"Task to execute"`
	Plan      string `help:"Plan file (JSON or YAML); its goal is used when no task is given"`
	Config    string `help:"Config file path"`
	Workspace string `help:"Workspace directory (overrides config)"`
	Events    bool   `help:"Publish events to NATS (overrides config)"`
}

// PlanCmd groups plan file operations.
type PlanCmd struct {
	Validate PlanValidateCmd `cmd:"" help:"Validate a plan's dependency graph"`
	Inspect  PlanInspectCmd  `cmd:"" help:"Show a plan's structure and ready frontier"`
}

// PlanValidateCmd validates a plan file.
type PlanValidateCmd struct {
	File string `arg:"" help:"Plan file (JSON or YAML)"`
}

// PlanInspectCmd shows plan structure.
type PlanInspectCmd struct {
	File string `arg:"" help:"Plan file (JSON or YAML)"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}

// Package tools provides the tool capability interface, the registry the
// agent loop dispatches through, and the built-in tool set.
package tools

import "context"

// Tool represents an executable tool capability.
type Tool interface {
	// Name returns the tool name.
	Name() string
	// Description returns a description for the decision capability.
	Description() string
	// Parameters returns the JSON schema for arguments.
	Parameters() map[string]interface{}
	// Execute runs the tool with the given arguments and returns its text
	// output.
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// Definition is the catalog-facing tool definition embedded in decision
// prompts.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

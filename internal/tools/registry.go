// Tool registry.
package tools

import "sort"

// Registry holds registered tools. It is an explicit value passed into the
// agent loop; there is no process-wide registry.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// NewBuiltinRegistry creates a registry with the built-in tool set rooted
// at the given workspace. A non-nil searcher additionally registers the
// search tool.
func NewBuiltinRegistry(workspace string, searcher Searcher) *Registry {
	r := NewRegistry()
	r.Register(&viewFileTool{workspace: workspace})
	r.Register(&writeFileTool{workspace: workspace})
	r.Register(&listDirTool{workspace: workspace})
	r.Register(&runCommandTool{workspace: workspace})
	if searcher != nil {
		r.Register(&searchTool{searcher: searcher})
	}
	return r
}

// Register adds a tool to the registry, replacing any tool with the same
// name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	return r.tools[name]
}

// Definitions returns catalog definitions for all registered tools, sorted
// by name for stable prompt content.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Tool exposes the capabilities required by both protocol adapters.
// Call carries the transport-neutral logic and returns the markdown text,
// or one of the baseline error kinds.
type Tool interface {
	Definition() mcp.Tool
	Call(ctx context.Context, args map[string]any) (string, error)
}

// Registry holds the enabled tools in registration order.
type Registry struct {
	tools *orderedmap.OrderedMap[string, Tool]
}

// NewRegistry registers tools in the given order. Nil entries are skipped.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: orderedmap.New[string, Tool]()}
	for _, tool := range tools {
		if tool == nil {
			continue
		}

		name := tool.Definition().Name
		if name == "" {
			return nil, errors.New("tool name is required")
		}
		if _, present := r.tools.Set(name, tool); present {
			return nil, errors.Errorf("duplicate tool %q", name)
		}
	}

	return r, nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	if r == nil {
		return nil, false
	}
	return r.tools.Get(name)
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	if r == nil {
		return nil
	}

	out := make([]Tool, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	out := make([]string, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Definitions returns the mcp metadata of every registered tool.
func (r *Registry) Definitions() []mcp.Tool {
	list := r.List()
	out := make([]mcp.Tool, 0, len(list))
	for _, tool := range list {
		out = append(out, tool.Definition())
	}
	return out
}

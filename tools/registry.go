// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are declared once in a fixed table and bound to typed handlers by RegisterAll.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a Wikipedia client method with matching Args type.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "search_wikipedia")
	Name string

	// Method is the client method name (e.g., "Search")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (search, read, discovery)
	Category string

	// FailurePhrase prefixes the error message when the call fails
	FailurePhrase string

	// ReadOnly indicates the tool doesn't modify wiki state
	ReadOnly bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}

package shared

import "context"

// ToolFunc is the function signature for tool execution.
// Used by middleware to wrap typed tool functions.
type ToolFunc[TArgs, TResults any] func(ctx context.Context, args TArgs) (TResults, error)

// Middleware wraps a tool function with cross-cutting behavior.
type Middleware[TArgs, TResults any] func(name string, next ToolFunc[TArgs, TResults]) ToolFunc[TArgs, TResults]

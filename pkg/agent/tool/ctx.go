package tool

import "context"

// UpdateFunc receives progress messages emitted by tools while they run,
// so the chat frontend can show what the agent is doing.
type UpdateFunc func(ctx context.Context, message string)

type contextKey struct{}

// WithUpdate returns a context carrying the given UpdateFunc
func WithUpdate(ctx context.Context, fn UpdateFunc) context.Context {
	return context.WithValue(ctx, contextKey{}, fn)
}

// Update sends a progress message to the UpdateFunc stored in ctx.
// Without one in ctx, the call is a no-op.
func Update(ctx context.Context, message string) {
	if fn, ok := ctx.Value(contextKey{}).(UpdateFunc); ok {
		fn(ctx, message)
	}
}

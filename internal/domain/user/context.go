package user

import "context"

type contextKey struct{}

// NewContext tags ctx with the authenticated principal. Downstream layers
// read capabilities from the principal instead of re-checking headers.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

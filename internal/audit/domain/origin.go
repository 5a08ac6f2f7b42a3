package domain

import "context"

// Origin describes where an invocation came from.
type Origin struct {
	ClientAddress string
	Path          string
	Method        string
}

type originKey struct{}

// WithOrigin stores the request origin in the context.
func WithOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext returns the request origin, or the zero Origin for calls that did not
// arrive over HTTP (CLI commands, background jobs).
func OriginFromContext(ctx context.Context) Origin {
	origin, _ := ctx.Value(originKey{}).(Origin)
	return origin
}

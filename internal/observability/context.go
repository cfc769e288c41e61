package observability

import (
	"context"
)

// Context keys for observability data.
type contextKey string

const (
	requestIDKey      contextKey = "request_id"
	identifierKindKey contextKey = "identifier_kind"
	clientIPKey       contextKey = "client_ip"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, requestIDKey)
}

// WithIdentifierKind records the classified identifier kind on the context.
func WithIdentifierKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, identifierKindKey, kind)
}

// IdentifierKindFromContext retrieves the identifier kind from context.
func IdentifierKindFromContext(ctx context.Context) string {
	return stringFromContext(ctx, identifierKindKey)
}

// WithClientIP adds the caller's address to the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromContext retrieves the caller's address from context.
func ClientIPFromContext(ctx context.Context) string {
	return stringFromContext(ctx, clientIPKey)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequestContext contains the per-request observability data.
type RequestContext struct {
	RequestID      string
	IdentifierKind string
	ClientIP       string
}

// WithRequestContext adds all non-empty request context values to ctx.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	if rc.RequestID != "" {
		ctx = WithRequestID(ctx, rc.RequestID)
	}
	if rc.IdentifierKind != "" {
		ctx = WithIdentifierKind(ctx, rc.IdentifierKind)
	}
	if rc.ClientIP != "" {
		ctx = WithClientIP(ctx, rc.ClientIP)
	}
	return ctx
}

// RequestContextFromContext extracts all request context from ctx.
func RequestContextFromContext(ctx context.Context) RequestContext {
	return RequestContext{
		RequestID:      RequestIDFromContext(ctx),
		IdentifierKind: IdentifierKindFromContext(ctx),
		ClientIP:       ClientIPFromContext(ctx),
	}
}

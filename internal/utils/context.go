// Package utils provides small helpers shared by the client and the test
// backend: context keys, request IDs, HMAC hashing, JSON response writing, the
// HTTP client wrapper and bearer token parsing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey is the key under which a caller may pin the X-Request-ID of
// the next outgoing request.
var RequestIDCtxKey = contextKey("requestID")

// TabIDCtxKey identifies the tab a request is issued from. It only feeds logs.
var TabIDCtxKey = contextKey("tabID")

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext returns the request ID stored in ctx.
//
// ok is false when the value is missing, empty or not a string.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}

// WithTabID returns a copy of ctx carrying tabID.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, TabIDCtxKey, tabID)
}

// GetTabIDFromContext returns the tab ID stored in ctx, or "" when absent.
func GetTabIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TabIDCtxKey).(string)
	return id
}

// UserGUIDCtxKey carries the subject of a verified bearer token.
var UserGUIDCtxKey = contextKey("userGUID")

// GetUserGUIDFromContext returns the authenticated user stored in ctx.
func GetUserGUIDFromContext(ctx context.Context) (string, bool) {
	guid, ok := ctx.Value(UserGUIDCtxKey).(string)
	return guid, ok && guid != ""
}

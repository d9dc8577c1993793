package logging

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	reportKey    contextKey = "report"
)

// WithSessionID adds an edit session ID to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithReport adds the report path being worked on to the context.
func WithReport(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, reportKey, path)
}

// GetSessionID retrieves the session ID from the context.
// Returns empty string if not present.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetReport retrieves the report path from the context.
// Returns empty string if not present.
func GetReport(ctx context.Context) string {
	if p, ok := ctx.Value(reportKey).(string); ok {
		return p
	}
	return ""
}

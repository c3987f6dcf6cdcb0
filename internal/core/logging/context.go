package logging

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	fileKey  contextKey = "file"
)

// WithRunID tags the context with the ID of a ranking run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithFile tags the context with the resume file being processed.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileKey, file)
}

// GetRunID retrieves the run ID from the context.
// Returns empty string if not present.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// GetFile retrieves the resume file from the context.
// Returns empty string if not present.
func GetFile(ctx context.Context) string {
	if f, ok := ctx.Value(fileKey).(string); ok {
		return f
	}
	return ""
}

package logging

import "context"

type contextKey string

const (
	runIDKey      contextKey = "algen_run_id"
	generationKey contextKey = "algen_generation"
)

// WithRunID annotates the context with a run identifier so subsequent log
// entries can be correlated to a single engine invocation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the run identifier from the context, if present.
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}

// WithGeneration annotates the context with the current generation index.
func WithGeneration(ctx context.Context, generation int) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetGeneration retrieves the generation index from the context, if present.
func GetGeneration(ctx context.Context) (int, bool) {
	generation, ok := ctx.Value(generationKey).(int)
	return generation, ok
}

package jobs

import "context"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueAnalysis(ctx context.Context, gameID int64) error
	EnqueueImport(ctx context.Context, path string) error
}

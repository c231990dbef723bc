package jobs

import (
	"context"

	"github.com/vytor/chessreview/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	analysisPool *worker.Pool
	importPool   *worker.Pool
	analyzer     worker.GameAnalyzer
	importer     worker.GameImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(analysisPool, importPool *worker.Pool, analyzer worker.GameAnalyzer, importer worker.GameImporter) JobQueue {
	return &WorkerQueue{
		analysisPool: analysisPool,
		importPool:   importPool,
		analyzer:     analyzer,
		importer:     importer,
	}
}

func (q *WorkerQueue) EnqueueAnalysis(ctx context.Context, gameID int64) error {
	return q.analysisPool.Submit(ctx, &worker.AnalyzeGameJob{
		Service: q.analyzer,
		GameID:  gameID,
	})
}

func (q *WorkerQueue) EnqueueImport(ctx context.Context, path string) error {
	return q.importPool.Submit(ctx, &worker.ImportFileJob{
		Service: q.importer,
		Path:    path,
	})
}

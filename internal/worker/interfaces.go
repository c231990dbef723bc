package worker

import "context"

// GameAnalyzer reviews a stored game. Declared here instead of importing
// the services package, which would create an import cycle through the
// job queue.
type GameAnalyzer interface {
	AnalyzeGame(ctx context.Context, gameID int64) error
}

// GameImporter parses and stores a single game file.
type GameImporter interface {
	ImportFile(ctx context.Context, path string) (int64, error)
}

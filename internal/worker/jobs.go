package worker

import "context"

// AnalyzeGameJob reviews one stored game.
type AnalyzeGameJob struct {
	Service GameAnalyzer
	GameID  int64
}

func (j *AnalyzeGameJob) Name() string { return "analyze_game" }

func (j *AnalyzeGameJob) Run(ctx context.Context) error {
	return j.Service.AnalyzeGame(ctx, j.GameID)
}

// ImportFileJob parses one game file and stores it.
type ImportFileJob struct {
	Service GameImporter
	Path    string
}

func (j *ImportFileJob) Name() string { return "import_file" }

func (j *ImportFileJob) Run(ctx context.Context) error {
	_, err := j.Service.ImportFile(ctx, j.Path)
	return err
}

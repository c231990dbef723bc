package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/chessreview/internal/analysis"
	"github.com/vytor/chessreview/internal/book"
	"github.com/vytor/chessreview/internal/config"
	"github.com/vytor/chessreview/internal/db"
	"github.com/vytor/chessreview/internal/jobs"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/repository/sqlite"
	"github.com/vytor/chessreview/internal/review"
	"github.com/vytor/chessreview/internal/services"
	"github.com/vytor/chessreview/internal/worker"
)

// gameReport is one game's review as printed on stdout.
type gameReport struct {
	GameID int64          `json:"game_id"`
	White  string         `json:"white"`
	Black  string         `json:"black"`
	Report *review.Report `json:"report"`
}

func main() {
	cfg := config.Load()

	// Logs go to stderr so stdout stays a clean JSON stream.
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ChessReview Analyzer Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("games_dir=%s", cfg.GamesDir)
	log.Debug("book_path=%s", cfg.BookPath)
	log.Debug("stockfish_path=%s", cfg.StockfishPath)
	log.Debug("stockfish_depth=%d", cfg.StockfishDepth)
	log.Debug("stockfish_move_time=%s", cfg.StockfishMoveTime)
	log.Debug("engine_count=%d", cfg.EngineCount)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("analysis_worker_count=%d", cfg.AnalysisWorkerCount)
	log.Debug("analysis_queue_size=%d", cfg.AnalysisQueueSize)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load opening book. Analysis still works without one; book moves just
	// go unrecognized.
	var bookLookup review.BookLookup
	if b, err := book.LoadFile(cfg.BookPath); err != nil {
		log.Warn("opening book unavailable: %v", err)
	} else {
		log.Info("opening book loaded: %d positions", b.Len())
		bookLookup = b
	}

	// Start engines
	enginePool, err := analysis.NewEnginePool(cfg.StockfishPath, cfg.EngineCount, cfg.StockfishDepth, cfg.StockfishMoveTime)
	if err != nil {
		log.Error("failed to start engines: %v", err)
		os.Exit(1)
	}
	defer enginePool.Close()

	// Initialize repositories
	gameRepo := sqlite.NewGameRepository(database.DB)
	reportRepo := sqlite.NewReportRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize services
	reviewer := review.NewReviewer(enginePool, bookLookup)
	reviewService := services.NewReviewService(gameRepo, reportRepo, reviewer)
	importService := services.NewImportService(gameRepo)
	statsService := services.NewStatsService(statsRepo)

	// Initialize worker pools
	analysisPool := worker.NewPool("analysis-pool", cfg.AnalysisWorkerCount, cfg.AnalysisQueueSize)
	importPool := worker.NewPool("import-pool", cfg.ImportWorkerCount, cfg.ImportQueueSize)
	queue := jobs.NewWorkerQueue(analysisPool, importPool, reviewService, importService)
	gameService := services.NewGameService(gameRepo, queue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stage 1: import game files.
	importPool.Start(ctx)
	files, err := importService.DiscoverGames(ctx, cfg.GamesDir)
	if err != nil {
		log.Warn("skipping import: %v", err)
	}
	for _, path := range files {
		if err := queue.EnqueueImport(ctx, path); err != nil {
			log.Warn("import aborted: %v", err)
			break
		}
	}
	importPool.Drain()

	// Stage 2: review everything not yet analyzed, including games earlier
	// runs imported or left unfinished.
	analysisPool.Start(ctx)
	queuedIDs, err := gameService.ResumeAnalysis(ctx)
	if err != nil {
		log.Error("failed to queue games for analysis: %v", err)
		os.Exit(1)
	}
	analysisPool.Drain()

	if ctx.Err() != nil {
		log.Warn("analysis interrupted, unfinished games stay queued for the next run")
	}

	// Stage 3: print the reports. Games that finished before an interrupt
	// still print, so reads run on an uncancellable context.
	printCtx := context.WithoutCancel(ctx)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	printed := 0
	for _, id := range queuedIDs {
		game, err := gameService.GetGame(printCtx, id)
		if err != nil {
			log.Warn("failed to load game %d: %v", id, err)
			continue
		}
		report, err := reviewService.GetReport(printCtx, id)
		if err != nil {
			log.Warn("no report for game %d (%s vs %s): %v", id, game.White, game.Black, err)
			continue
		}
		if err := enc.Encode(gameReport{
			GameID: id,
			White:  game.White,
			Black:  game.Black,
			Report: report,
		}); err != nil {
			log.Error("failed to write report for game %d: %v", id, err)
		}
		printed++
	}
	log.Info("printed %d of %d reports", printed, len(queuedIDs))

	logStats(printCtx, statsService)

	log.Info("===========================================")
	log.Info("ChessReview Analyzer Finished")
	log.Info("===========================================")
}

// logStats summarizes the whole corpus of analyzed games.
func logStats(ctx context.Context, stats services.StatsService) {
	log := logger.FromContext(ctx)

	phaseStats, err := stats.GetPhaseStats(ctx)
	if err != nil {
		log.Warn("failed to load phase stats: %v", err)
		return
	}
	for _, st := range phaseStats {
		log.Info("phase stats: %s/%s count=%d avg_loss=%.2f", st.Phase, st.Classification, st.Count, st.AvgEvalLoss)
	}

	playerStats, err := stats.GetPlayerStats(ctx)
	if err != nil {
		log.Warn("failed to load player stats: %v", err)
		return
	}
	for _, st := range playerStats {
		if st.Count == 0 {
			continue
		}
		log.Info("player stats: %s %s=%d", st.Player, st.Classification, st.Count)
	}
}

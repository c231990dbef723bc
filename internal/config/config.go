package config

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath              string
	GamesDir            string
	BookPath            string
	StockfishPath       string
	StockfishDepth      int
	StockfishMoveTime   time.Duration
	EngineCount         int
	LogLevel            string
	AnalysisWorkerCount int
	AnalysisQueueSize   int
	ImportWorkerCount   int
	ImportQueueSize     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		DBPath:              envOr("DB_PATH", "file:chessreview.db"),
		GamesDir:            envOr("GAMES_DIR", "games"),
		BookPath:            envOr("BOOK_PATH", "openings.csv"),
		StockfishPath:       envOr("STOCKFISH_PATH", "stockfish"),
		StockfishDepth:      envIntOr("STOCKFISH_DEPTH", 20),
		StockfishMoveTime:   envDurationOr("STOCKFISH_MOVE_TIME", 8*time.Second),
		EngineCount:         envIntOr("ENGINE_COUNT", 2),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		AnalysisWorkerCount: envIntOr("ANALYSIS_WORKER_COUNT", 2),
		AnalysisQueueSize:   envIntOr("ANALYSIS_QUEUE_SIZE", 64),
		ImportWorkerCount:   envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:     envIntOr("IMPORT_QUEUE_SIZE", 32),
	}
}

// Validate checks that the configuration is usable. All problems are reported
// together so a broken .env can be fixed in one pass.
func (c Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.StockfishDepth < 1 || c.StockfishDepth > 30 {
		problems = append(problems, fmt.Sprintf("STOCKFISH_DEPTH must be between 1 and 30, got %d", c.StockfishDepth))
	}
	if c.StockfishMoveTime < 0 {
		problems = append(problems, fmt.Sprintf("STOCKFISH_MOVE_TIME cannot be negative, got %s", c.StockfishMoveTime))
	}
	// An empty path is allowed: Load substitutes the default binary name.
	if c.StockfishPath != "" {
		if _, err := exec.LookPath(c.StockfishPath); err != nil {
			problems = append(problems, fmt.Sprintf("STOCKFISH_PATH %q is not an executable on this system", c.StockfishPath))
		}
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.EngineCount < 1 {
		problems = append(problems, fmt.Sprintf("ENGINE_COUNT must be at least 1, got %d", c.EngineCount))
	}
	if c.AnalysisWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("ANALYSIS_WORKER_COUNT must be at least 1, got %d", c.AnalysisWorkerCount))
	}
	if c.AnalysisQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("ANALYSIS_QUEUE_SIZE must be at least 1, got %d", c.AnalysisQueueSize))
	}
	if c.ImportWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("IMPORT_WORKER_COUNT must be at least 1, got %d", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("IMPORT_QUEUE_SIZE must be at least 1, got %d", c.ImportQueueSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

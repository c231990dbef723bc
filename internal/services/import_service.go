package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/ingest"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

// ImportService handles game file import business logic
type ImportService interface {
	DiscoverGames(ctx context.Context, dir string) ([]string, error)
	ImportFile(ctx context.Context, path string) (int64, error)
}

type importService struct {
	gameRepo repository.GameRepository
}

// NewImportService creates a new ImportService
func NewImportService(gameRepo repository.GameRepository) ImportService {
	return &importService{gameRepo: gameRepo}
}

// DiscoverGames lists the game files under dir, in name order. Only .pgn
// and .json files count; subdirectories are not walked.
func (s *importService) DiscoverGames(ctx context.Context, dir string) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Debug("scanning games directory: %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("failed to read games directory: %v", err)
		return nil, errors.NewIngestError("reading games directory", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pgn", ".json":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	log.Debug("found %d game files", len(paths))
	return paths, nil
}

func (s *importService) ImportFile(ctx context.Context, path string) (int64, error) {
	log := logger.FromContext(ctx).WithField("file", path)
	log.Debug("importing game file")

	f, err := os.Open(path)
	if err != nil {
		log.Error("failed to open game file: %v", err)
		return 0, errors.NewIngestError("opening game file", err)
	}
	defer f.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	var game ingest.Game
	switch format {
	case "pgn":
		game, err = ingest.ParsePGN(f)
	case "json":
		game, err = ingest.ParseJSON(f)
	default:
		return 0, errors.NewIngestError(fmt.Sprintf("unsupported game format %q", format), nil)
	}
	if err != nil {
		log.Error("failed to parse game file: %v", err)
		return 0, errors.NewIngestError("parsing game file", err)
	}

	if len(game.Moves) == 0 {
		return 0, errors.NewIngestError("game has no moves", nil)
	}

	id, err := s.gameRepo.Insert(ctx, models.Game{
		Source: path,
		Format: format,
		White:  game.White,
		Black:  game.Black,
		Moves:  strings.Join(game.Moves, " "),
	})
	if err != nil {
		log.Error("failed to insert game: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("imported game %d: %s vs %s (%d moves)", id, game.White, game.Black, len(game.Moves))
	return id, nil
}

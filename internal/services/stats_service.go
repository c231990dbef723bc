package services

import (
	"context"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetPhaseStats(ctx context.Context) ([]models.PhaseClassificationStat, error)
	GetPlayerStats(ctx context.Context) ([]models.PlayerClassificationStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetPhaseStats(ctx context.Context) ([]models.PhaseClassificationStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting phase classification stats")

	stats, err := s.statsRepo.PhaseStats(ctx)
	if err != nil {
		log.Error("failed to get phase stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) GetPlayerStats(ctx context.Context) ([]models.PlayerClassificationStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting player classification stats")

	stats, err := s.statsRepo.PlayerStats(ctx)
	if err != nil {
		log.Error("failed to get player stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

package service

import (
	"context"
	"fmt"
	"sort"

	"app/internal/matrix"
	"app/internal/model"
	"app/internal/repository"
)

// StatsService reads the derived per-type aggregates maintained by the
// aggregation worker.
type StatsService interface {
	// ListStats returns one aggregate row per assessment type seen in the
	// data, ordered by registry position. Types no longer registered sort
	// last.
	ListStats(ctx context.Context) ([]model.AssessmentTypeStat, error)
}

type statsService struct {
	repo repository.StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) ListStats(ctx context.Context) ([]model.AssessmentTypeStat, error) {
	stats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment type stats: %w", err)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return registryRank(stats[i].AssessmentType) < registryRank(stats[j].AssessmentType)
	})
	return stats, nil
}

func registryRank(label string) int {
	if i := matrix.TypeIndex(label); i >= 0 {
		return i
	}
	return len(matrix.Types())
}

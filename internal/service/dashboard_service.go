package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
)

const (
	searchStatsWindow = 7 * 24 * time.Hour
	searchStatsLimit  = 10
)

// DashboardData consolidates all metrics for the admin dashboard.
type DashboardData struct {
	Totals             repository.SummaryCounts `json:"totals"`
	RequirementsByExam map[model.ExamType]int   `json:"requirementsByExamType"`
	LegacyRequirements int                      `json:"legacyRequirements"`
	RecentSearches     []model.SearchStat       `json:"recentSearches"`
	LiveSearches       []model.SearchStat       `json:"liveSearches"`
}

// DashboardService handles admin dashboard business logic.
type DashboardService struct {
	repo      *repository.DashboardRepository
	searchLog *SearchLogService
	log       zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository, searchLog *SearchLogService, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		repo:      repo,
		searchLog: searchLog,
		log:       log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetDashboardData fetches all dashboard metrics sequentially.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	totals, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	byExam, err := s.repo.GetRequirementCountsByExamType(ctx)
	if err != nil {
		return nil, err
	}

	legacy, err := s.repo.CountLegacyRequirements(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetSearchStats(ctx, time.Now().Add(-searchStatsWindow), searchStatsLimit)
	if err != nil {
		return nil, err
	}

	// Live counters are advisory.
	live, err := s.searchLog.LiveStats(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read live search stats")
		live = []model.SearchStat{}
	}

	return &DashboardData{
		Totals:             totals,
		RequirementsByExam: byExam,
		LegacyRequirements: legacy,
		RecentSearches:     recent,
		LiveSearches:       live,
	}, nil
}

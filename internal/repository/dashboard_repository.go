package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// SummaryCounts are the catalog totals shown on the dashboard.
type SummaryCounts struct {
	Universities int `json:"universities"`
	Campuses     int `json:"campuses"`
	Majors       int `json:"majors"`
	Requirements int `json:"requirements"`
}

// GetSummaryCounts retrieves the high-level catalog totals.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (SummaryCounts, error) {
	var s SummaryCounts
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM universities),
			(SELECT COUNT(*) FROM campuses),
			(SELECT COUNT(*) FROM majors),
			(SELECT COUNT(*) FROM admission_requirements)`,
	).Scan(&s.Universities, &s.Campuses, &s.Majors, &s.Requirements)
	return s, err
}

// GetRequirementCountsByExamType retrieves the distribution of requirements by exam type.
func (r *DashboardRepository) GetRequirementCountsByExamType(ctx context.Context) (map[model.ExamType]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT exam_type, COUNT(*) FROM admission_requirements GROUP BY exam_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ExamType]int)
	for _, t := range model.ExamTypes {
		counts[t] = 0
	}
	for rows.Next() {
		var examType model.ExamType
		var count int
		if err := rows.Scan(&examType, &count); err != nil {
			return nil, err
		}
		counts[examType.Canonical()] += count
	}
	return counts, rows.Err()
}

// CountLegacyRequirements counts THPTQG rows that carry no subject combination.
func (r *DashboardRepository) CountLegacyRequirements(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM admission_requirements WHERE exam_type = $1 AND subject_combination IS NULL`,
		string(model.ExamTypeTHPTQG),
	).Scan(&n)
	return n, err
}

// GetSearchStats aggregates persisted search events since the given time,
// busiest exam type and combination first.
func (r *DashboardRepository) GetSearchStats(ctx context.Context, since time.Time, limit int) ([]model.SearchStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT exam_type, COALESCE(subject_combination, ''),
			COUNT(*), COUNT(*) FILTER (WHERE major_count = 0)
		 FROM search_events
		 WHERE searched_at >= $1
		 GROUP BY exam_type, COALESCE(subject_combination, '')
		 ORDER BY COUNT(*) DESC, exam_type, COALESCE(subject_combination, '')
		 LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.SearchStat{}
	for rows.Next() {
		var s model.SearchStat
		if err := rows.Scan(&s.ExamType, &s.SubjectCombination, &s.Searches, &s.EmptyResults); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

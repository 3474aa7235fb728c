package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// SearchEventRepository persists anonymised search events.
type SearchEventRepository struct {
	pool *pgxpool.Pool
}

// NewSearchEventRepository creates a new SearchEventRepository.
func NewSearchEventRepository(pool *pgxpool.Pool) *SearchEventRepository {
	return &SearchEventRepository{pool: pool}
}

// InsertBatch writes events with a single COPY.
func (r *SearchEventRepository) InsertBatch(ctx context.Context, events []model.SearchEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	return r.pool.CopyFrom(ctx,
		pgx.Identifier{"search_events"},
		[]string{"exam_type", "score", "subject_combination", "university_count", "major_count", "searched_at"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			e := events[i]
			var combo *string
			if e.SubjectCombination != "" {
				combo = &e.SubjectCombination
			}
			return []any{string(e.ExamType), e.Score, combo, e.UniversityCount, e.MajorCount, e.SearchedAt}, nil
		}),
	)
}

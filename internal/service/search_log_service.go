package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// liveStatsTTL bounds how long the Redis counters live without new searches.
const liveStatsTTL = 7 * 24 * time.Hour

// SearchLogService publishes anonymised search events to Redis. Events are
// queued for SearchLogWorker to persist and also counted in a hash per exam
// type so the dashboard can show live totals. Failures are logged, never
// returned, so a Redis outage cannot fail a search.
type SearchLogService struct {
	rdb     *redis.Client
	enabled bool
	log     zerolog.Logger
}

// NewSearchLogService creates a new SearchLogService. A nil client disables it.
func NewSearchLogService(rdb *redis.Client, enabled bool, log zerolog.Logger) *SearchLogService {
	return &SearchLogService{
		rdb:     rdb,
		enabled: enabled && rdb != nil,
		log:     log.With().Str("component", "search_log_service").Logger(),
	}
}

// Enabled reports whether events are being recorded.
func (s *SearchLogService) Enabled() bool { return s.enabled }

// Record summarises one answered search and publishes it.
func (s *SearchLogService) Record(ctx context.Context, q model.RecommendationQuery, resp *model.RecommendationResponse) {
	if !s.enabled || resp == nil {
		return
	}

	event := NewSearchEvent(q, resp, time.Now().UTC())
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal search event")
		return
	}

	statsKey := config.CacheKey.SearchStatsKey(string(event.ExamType))
	field := statField(event.SubjectCombination)
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, config.WorkerKey.PersistSearchEventsQueue, payload)
		pipe.HIncrBy(ctx, statsKey, field, 1)
		if event.MajorCount == 0 {
			pipe.HIncrBy(ctx, statsKey, field+":empty", 1)
		}
		pipe.Expire(ctx, statsKey, liveStatsTTL)
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("exam_type", string(event.ExamType)).Msg("Failed to publish search event")
	}
}

// LiveStats reads the Redis counters written by Record.
func (s *SearchLogService) LiveStats(ctx context.Context) ([]model.SearchStat, error) {
	if !s.enabled {
		return []model.SearchStat{}, nil
	}

	stats := []model.SearchStat{}
	for _, examType := range model.ExamTypes {
		fields, err := s.rdb.HGetAll(ctx, config.CacheKey.SearchStatsKey(string(examType))).Result()
		if err != nil {
			return nil, err
		}
		stats = append(stats, ParseLiveStats(examType, fields)...)
	}
	return stats, nil
}

// NewSearchEvent builds the anonymised event for a search and its answer.
func NewSearchEvent(q model.RecommendationQuery, resp *model.RecommendationResponse, at time.Time) model.SearchEvent {
	e := model.SearchEvent{
		ExamType:        q.ExamType,
		Score:           q.Score,
		UniversityCount: len(resp.Recommendations),
		SearchedAt:      at,
	}
	if q.SubjectCombination != nil {
		e.SubjectCombination = string(*q.SubjectCombination)
	}
	for _, u := range resp.Recommendations {
		e.MajorCount += len(u.Majors)
	}
	return e
}

func statField(combination string) string {
	if combination == "" {
		return noCombination
	}
	return combination
}

// ParseLiveStats turns one exam type's counter hash into stats sorted by
// searches descending, then combination.
func ParseLiveStats(examType model.ExamType, fields map[string]string) []model.SearchStat {
	byCombo := make(map[string]*model.SearchStat)
	get := func(combo string) *model.SearchStat {
		st, ok := byCombo[combo]
		if !ok {
			st = &model.SearchStat{ExamType: examType, SubjectCombination: combo}
			byCombo[combo] = st
		}
		return st
	}

	for field, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if combo, ok := strings.CutSuffix(field, ":empty"); ok {
			get(combo).EmptyResults = n
		} else {
			get(field).Searches = n
		}
	}

	out := make([]model.SearchStat, 0, len(byCombo))
	for _, st := range byCombo {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Searches != out[j].Searches {
			return out[i].Searches > out[j].Searches
		}
		return out[i].SubjectCombination < out[j].SubjectCombination
	})
	return out
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/model"
)

// maxBatch caps how many queued events one COPY writes.
const maxBatch = 200

// EventSink persists search events.
type EventSink interface {
	InsertBatch(ctx context.Context, events []model.SearchEvent) (int64, error)
}

// SearchLogWorker consumes persist_search_events_queue and copies the events
// into PostgreSQL in batches.
type SearchLogWorker struct {
	sink  EventSink
	rdb   *redis.Client
	queue string
	log   zerolog.Logger
}

// NewSearchLogWorker creates a new SearchLogWorker.
func NewSearchLogWorker(sink EventSink, rdb *redis.Client, log zerolog.Logger) *SearchLogWorker {
	return &SearchLogWorker{
		sink:  sink,
		rdb:   rdb,
		queue: config.WorkerKey.PersistSearchEventsQueue,
		log:   log.With().Str("component", "search_log_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *SearchLogWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *SearchLogWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout passes.
	first, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(first) < 2 {
		return
	}

	raw := []string{first[1]}
	rest, err := w.rdb.LPopCount(ctx, w.queue, maxBatch-1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		w.log.Warn().Err(err).Msg("LPopCount error, persisting partial batch")
	}
	raw = append(raw, rest...)

	if err := w.persist(ctx, raw); err != nil {
		w.log.Error().Err(err).Int("count", len(raw)).Msg("Persist error, retrying in 5s")
		w.requeue(ctx, raw)
		sleep(ctx, 5*time.Second)
	}
}

func (w *SearchLogWorker) persist(ctx context.Context, raw []string) error {
	events, bad := DecodeEvents(raw)
	if bad > 0 {
		w.log.Warn().Int("count", bad).Msg("Dropped malformed search events")
	}
	if len(events) == 0 {
		return nil
	}
	n, err := w.sink.InsertBatch(ctx, events)
	if err != nil {
		return err
	}
	w.log.Debug().Int64("count", n).Msg("Persisted search events")
	return nil
}

func (w *SearchLogWorker) requeue(ctx context.Context, raw []string) {
	vals := make([]interface{}, len(raw))
	for i, r := range raw {
		vals[i] = r
	}
	if err := w.rdb.RPush(context.WithoutCancel(ctx), w.queue, vals...).Err(); err != nil {
		w.log.Error().Err(err).Int("count", len(raw)).Msg("Requeue failed, events lost")
	}
}

// drain persists everything left in the queue before shutdown.
func (w *SearchLogWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPopCount(ctx, w.queue, maxBatch).Result()
		if err != nil || len(raw) == 0 {
			break
		}
		if err := w.persist(ctx, raw); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.requeue(ctx, raw)
			break
		}
		drained += len(raw)
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

// DecodeEvents parses queued JSON payloads, skipping and counting the ones
// that are malformed or carry an unknown exam type.
func DecodeEvents(raw []string) ([]model.SearchEvent, int) {
	events := make([]model.SearchEvent, 0, len(raw))
	bad := 0
	for _, r := range raw {
		var e model.SearchEvent
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			bad++
			continue
		}
		examType, err := model.ParseExamType(string(e.ExamType))
		if err != nil {
			bad++
			continue
		}
		e.ExamType = examType
		if e.SearchedAt.IsZero() {
			e.SearchedAt = time.Now().UTC()
		}
		events = append(events, e)
	}
	return events, bad
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

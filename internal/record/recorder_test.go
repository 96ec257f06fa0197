package record

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rmoran/folio-data/internal/config"
	"github.com/rmoran/folio-data/internal/model"
)

type stubResults struct{ tag string }

func (s *stubResults) Exec() (pgconn.CommandTag, error) { return pgconn.NewCommandTag(s.tag), nil }
func (s *stubResults) Query() (pgx.Rows, error)         { return nil, nil }
func (s *stubResults) QueryRow() pgx.Row                { return nil }
func (s *stubResults) Close() error                     { return nil }

// stubStore records each batch it is handed and the context's state at
// send time.
type stubStore struct {
	mu      sync.Mutex
	batches []int
	ctxErrs []error
	tag     string
}

func (s *stubStore) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, b.Len())
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return &stubResults{tag: s.tag}
}

func TestTickRecorder_FinalFlushOnStop(t *testing.T) {
	store := &stubStore{tag: "INSERT 0 1"}
	r := NewTickRecorder(config.RecorderConfig{
		BatchSize:     100,
		FlushInterval: time.Hour, // only the final flush writes
		BufferSize:    10,
	}, store, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	r.Enqueue(model.Tick{Symbol: "AAPL", Price: 1894300, ExchangeTS: 1})
	r.Enqueue(model.Tick{Symbol: "MSFT", Price: 4021000, ExchangeTS: 2})

	// Wait for the consume loop to drain the buffer into the batch.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.BufferStats().TotalSent == 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if len(store.batches) != 1 || store.batches[0] != 2 {
		t.Fatalf("batches = %v, want one batch of 2", store.batches)
	}
	if store.ctxErrs[0] != nil {
		t.Errorf("final flush sent on a dead context: %v", store.ctxErrs[0])
	}

	stats := r.Stats()
	if stats.Inserts != 2 {
		t.Errorf("Inserts = %d, want 2", stats.Inserts)
	}
	if stats.Flushes != 1 {
		t.Errorf("Flushes = %d, want 1", stats.Flushes)
	}
}

func TestTickRecorder_ConflictCounting(t *testing.T) {
	store := &stubStore{tag: "INSERT 0 0"} // every row hits ON CONFLICT
	r := NewTickRecorder(config.RecorderConfig{
		BatchSize:     100,
		FlushInterval: time.Hour,
		BufferSize:    10,
	}, store, nil)

	rows := []tickRow{
		{Symbol: "AAPL", ExchangeTS: 1},
		{Symbol: "AAPL", ExchangeTS: 1},
	}

	conflicts, err := r.batchInsert(context.Background(), rows)
	if err != nil {
		t.Fatalf("batchInsert failed: %v", err)
	}
	if conflicts != 2 {
		t.Errorf("conflicts = %d, want 2", conflicts)
	}
}

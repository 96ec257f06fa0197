package record

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rmoran/folio-data/internal/config"
	"github.com/rmoran/folio-data/internal/model"
)

// Store is the slice of the database the recorder writes through.
// *pgxpool.Pool satisfies it.
type Store interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TickRecorder consumes ticks from its buffer and writes them to the
// ticks table in batches.
type TickRecorder struct {
	cfg    config.RecorderConfig
	logger *slog.Logger

	// Input from the stream listener
	input *Buffer[model.Tick]

	// Database
	db Store

	// Batching
	batch       []tickRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics Metrics
}

// Metrics contains recorder counters.
type Metrics struct {
	Inserts   int64
	Conflicts int64
	Flushes   int64
	Errors    int64
	Dropped   int64
}

// tickRow is the database row shape for a tick.
type tickRow struct {
	ID         string
	Symbol     string
	Price      int64
	Size       int64
	ExchangeTS int64
	ReceivedAt int64
}

// NewTickRecorder creates a recorder writing to db.
func NewTickRecorder(cfg config.RecorderConfig, db Store, logger *slog.Logger) *TickRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &TickRecorder{
		cfg:    cfg,
		db:     db,
		logger: logger,
		input:  NewBuffer[model.Tick](cfg.BufferSize),
		batch:  make([]tickRow, 0, cfg.BatchSize),
	}
}

// Enqueue hands a tick to the recorder. It never blocks; a closed
// recorder drops the tick.
func (r *TickRecorder) Enqueue(tick model.Tick) {
	if !r.input.Send(tick) {
		r.batchMu.Lock()
		r.metrics.Dropped++
		r.batchMu.Unlock()
	}
}

// Start begins consuming ticks and writing to the database.
func (r *TickRecorder) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.flushTicker = time.NewTicker(r.cfg.FlushInterval)

	// Consumer goroutine
	r.wg.Add(1)
	go r.consumeLoop()

	// Flush ticker goroutine
	r.wg.Add(1)
	go r.flushLoop()

	r.logger.Info("tick recorder started",
		"batch_size", r.cfg.BatchSize,
		"flush_interval", r.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the recorder.
func (r *TickRecorder) Stop(ctx context.Context) error {
	r.logger.Info("stopping tick recorder")

	r.input.Close()

	if r.cancel != nil {
		r.cancel()
	}

	if r.flushTicker != nil {
		r.flushTicker.Stop()
	}

	// Wait for goroutines
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("tick recorder stopped")
	case <-ctx.Done():
		r.logger.Warn("tick recorder stop timed out")
	}

	// Final flush on the shutdown context; the run context is canceled.
	r.flush(ctx)

	return nil
}

// Stats returns current metrics.
func (r *TickRecorder) Stats() Metrics {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	return r.metrics
}

// BufferStats returns input buffer statistics.
func (r *TickRecorder) BufferStats() BufferStats {
	return r.input.Stats()
}

// consumeLoop reads from the input buffer and accumulates batches.
func (r *TickRecorder) consumeLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
			tick, ok := r.input.TryReceive()
			if !ok {
				select {
				case <-r.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			r.handleTick(tick)
		}
	}
}

// flushLoop periodically flushes the batch.
func (r *TickRecorder) flushLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.flushTicker.C:
			r.flush(r.ctx)
		}
	}
}

// handleTick transforms and adds a tick to the batch.
func (r *TickRecorder) handleTick(tick model.Tick) {
	row := r.transform(tick)

	r.batchMu.Lock()
	r.batch = append(r.batch, row)
	shouldFlush := len(r.batch) >= r.cfg.BatchSize
	r.batchMu.Unlock()

	if shouldFlush {
		r.flush(r.ctx)
	}
}

// transform converts a tick to its row shape.
func (r *TickRecorder) transform(tick model.Tick) tickRow {
	return tickRow{
		ID:         tick.ID.String(),
		Symbol:     tick.Symbol,
		Price:      tick.Price,
		Size:       tick.Size,
		ExchangeTS: tick.ExchangeTS,
		ReceivedAt: tick.ReceivedAt,
	}
}

// flush writes the current batch to the database.
func (r *TickRecorder) flush(ctx context.Context) {
	r.batchMu.Lock()
	if len(r.batch) == 0 {
		r.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := r.batch
	r.batch = make([]tickRow, 0, r.cfg.BatchSize)
	r.batchMu.Unlock()

	start := time.Now()

	conflicts, err := r.batchInsert(ctx, batch)
	if err != nil {
		r.logger.Error("batch insert failed", "error", err, "count", len(batch))
		r.batchMu.Lock()
		r.metrics.Errors++
		r.batchMu.Unlock()
		return
	}

	r.batchMu.Lock()
	r.metrics.Inserts += int64(len(batch) - conflicts)
	r.metrics.Conflicts += int64(conflicts)
	r.metrics.Flushes++
	r.batchMu.Unlock()

	r.logger.Debug("flushed ticks",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (r *TickRecorder) batchInsert(ctx context.Context, rows []tickRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO ticks (id, symbol, price, size, exchange_ts, received_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (symbol, exchange_ts) DO NOTHING
		`, row.ID, row.Symbol, row.Price, row.Size, row.ExchangeTS, row.ReceivedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}

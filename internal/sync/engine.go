package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/glidewing/flight-log-etl/internal/domain"
	"github.com/glidewing/flight-log-etl/internal/observability"
)

// backupSuffixLayout is the local-date suffix of backup collections
// ({collection}_{YYMMDD}). Repeated runs on one day replace the same
// snapshot rather than accumulating duplicates.
const backupSuffixLayout = "060102"

// Store is the persistence port the engine drives. One Store is one named
// collection of the shared database.
type Store[T domain.Keyed] interface {
	// Name returns the collection name, used in errors and metrics.
	Name() string
	// Backup snapshots the collection into "{name}_{suffix}", replacing
	// any existing snapshot of that name.
	Backup(ctx context.Context, suffix string) error
	// DeleteKeys removes every stored record matching any of the given
	// composite keys and reports how many were removed.
	DeleteKeys(ctx context.Context, keys []domain.RecordKey) (int64, error)
	// Insert bulk-inserts the given records.
	Insert(ctx context.Context, records []T) error
}

// StoreError reports a failed store operation. The whole Sync call is safe
// to retry: every step is deterministic given the same input batch, and
// replacement by composite key makes repeats idempotent.
type StoreError struct {
	Op         string // "backup", "delete", or "insert"
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s on %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Engine synchronizes canonical batches into one store collection via
// backup, composite-key delete, then bulk insert. It assumes single-writer
// access to the collection; nothing guards the sequence against a
// concurrent second writer.
type Engine[T domain.Keyed] struct {
	store   Store[T]
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates an Engine over the given store.
func New[T domain.Keyed](store Store[T], logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Engine[T] {
	return &Engine[T]{
		store:   store,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// Sync makes the store collection reflect the batch without disturbing
// records whose keys the batch does not mention:
//
//  1. snapshot the collection to "{name}_{YYMMDD}" (abort on failure,
//     never delete without a backup),
//  2. delete every stored record matching a key present in the batch,
//  3. insert the whole batch.
//
// An empty batch is a no-op: no backup is taken and nothing is written.
func (e *Engine[T]) Sync(ctx context.Context, batch []T) error {
	name := e.store.Name()
	if len(batch) == 0 {
		e.logger.Warn("empty batch, nothing to sync", "collection", name)
		return nil
	}
	start := e.clock.Now()

	suffix := e.clock.Now().Format(backupSuffixLayout)
	if err := e.store.Backup(ctx, suffix); err != nil {
		return &StoreError{Op: "backup", Collection: name, Err: err}
	}
	e.metrics.Backups.WithLabelValues(name).Inc()

	keys := GroupKeys(batch)
	deleted, err := e.store.DeleteKeys(ctx, keys)
	if err != nil {
		return &StoreError{Op: "delete", Collection: name, Err: err}
	}
	e.metrics.RecordsDeleted.WithLabelValues(name).Add(float64(deleted))

	if err := e.store.Insert(ctx, batch); err != nil {
		return &StoreError{Op: "insert", Collection: name, Err: err}
	}
	e.metrics.RecordsInserted.WithLabelValues(name).Add(float64(len(batch)))
	e.metrics.SyncDuration.WithLabelValues(name).Observe(e.clock.Now().Sub(start).Seconds())

	e.logger.Info("synchronized collection",
		"collection", name,
		"backup_suffix", suffix,
		"keys", len(keys),
		"deleted", deleted,
		"inserted", len(batch),
	)
	return nil
}

// GroupKeys partitions a batch by composite key, returning the distinct
// keys in first-seen order.
func GroupKeys[T domain.Keyed](batch []T) []domain.RecordKey {
	seen := make(map[domain.RecordKey]struct{}, len(batch))
	keys := make([]domain.RecordKey, 0, len(batch))
	for _, record := range batch {
		k := record.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

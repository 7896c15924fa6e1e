package collate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/glidewing/flight-log-etl/internal/domain"
	"github.com/glidewing/flight-log-etl/internal/observability"
	"github.com/glidewing/flight-log-etl/internal/sheet"
)

const (
	// FilePattern selects candidate log sheets; everything else in the
	// directory is ignored entirely.
	FilePattern = "2965D_*.xlsx"

	// PlaceholderName is the blank template that lives alongside real
	// submissions. It always fails validation and is skipped silently.
	PlaceholderName = "2965D_YYMMDD_ZEXXX.xlsx"
)

// ErrNoSources is returned when the directory yields no candidate files.
var ErrNoSources = errors.New("no log sheets found")

// AllSourcesRejectedError is returned when candidates were present but
// every one failed. It surfaces the final file's underlying failure so the
// caller never mistakes "all inputs rejected" for a successful empty run.
type AllSourcesRejectedError struct {
	Dir  string
	File string
	Err  error
}

func (e *AllSourcesRejectedError) Error() string {
	return fmt.Sprintf("all log sheets in %s rejected, last failure %s: %v", e.Dir, e.File, e.Err)
}

func (e *AllSourcesRejectedError) Unwrap() error { return e.Err }

// Opener opens one source workbook by path. Implemented by the xlsx
// adapter; tests substitute fakes.
type Opener interface {
	Open(path string) (sheet.Workbook, error)
}

// Collator drives the per-file parse-validate-normalize sequence over a
// directory and concatenates the survivors into one canonical batch.
type Collator struct {
	opener  Opener
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Collator with the given workbook opener and observability.
func New(opener Opener, logger *slog.Logger, metrics *observability.Metrics) *Collator {
	return &Collator{
		opener:  opener,
		logger:  logger,
		metrics: metrics,
	}
}

// fileResult is the explicit outcome of processing one source file. A
// failure is data, not control flow: the loop partitions results itself.
type fileResult struct {
	path        string
	launches    []domain.Launch
	utilization []domain.AircraftUtilization
	err         error
}

// Collate enumerates candidate files in dir, processes each one in
// isolation, and returns the canonical batch. One bad submission never
// blocks the rest; it is logged as a warning and skipped.
func (c *Collator) Collate(ctx context.Context, dir string) (*domain.Batch, error) {
	paths, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, dir)
	}
	c.logger.Info("found log sheets", "count", len(paths), "dir", dir)
	c.metrics.SheetsDiscovered.Add(float64(len(paths)))

	results := make([]fileResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, c.processFile(path))
	}

	batch := &domain.Batch{}
	survivors := 0
	var lastFailure *fileResult
	for i := range results {
		r := &results[i]
		if r.err != nil {
			c.metrics.SheetsRejected.Inc()
			if filepath.Base(r.path) != PlaceholderName {
				c.logger.Warn("log sheet invalid, skipping",
					"file", filepath.Base(r.path), "error", r.err)
			}
			lastFailure = r
			continue
		}
		survivors++
		batch.Launches = append(batch.Launches, r.launches...)
		batch.Utilization = append(batch.Utilization, r.utilization...)
	}

	if survivors == 0 {
		return nil, &AllSourcesRejectedError{
			Dir:  dir,
			File: filepath.Base(lastFailure.path),
			Err:  lastFailure.err,
		}
	}

	// Re-normalizing the concatenation imposes the global takeoff-time
	// ordering; normalization is idempotent so survivors are unchanged.
	batch.Launches = domain.NormalizeLaunches(batch.Launches)

	c.metrics.LaunchesCollated.Add(float64(len(batch.Launches)))
	c.metrics.UtilizationCollated.Add(float64(len(batch.Utilization)))
	c.logger.Info("collated log sheets",
		"files", survivors,
		"launches", len(batch.Launches),
		"utilization", len(batch.Utilization),
	)
	return batch, nil
}

// processFile runs parse, validate, and normalize for one workbook. A
// utilization failure drops only that file's utilization contribution,
// never its launches.
func (c *Collator) processFile(path string) fileResult {
	r := fileResult{path: path}

	wb, err := c.opener.Open(path)
	if err != nil {
		r.err = err
		return r
	}

	parsed, err := sheet.Parse(wb)
	if err != nil {
		r.err = err
		return r
	}
	if err := domain.ValidateLaunches(parsed.Launches); err != nil {
		r.err = err
		return r
	}
	r.launches = domain.NormalizeLaunches(parsed.Launches)

	switch {
	case !parsed.HasUtilization:
		// Optional sheet absent; nothing to contribute.
	case parsed.UtilizationErr != nil:
		c.logger.Warn("aircraft info unreadable, dropping",
			"file", filepath.Base(path), "error", parsed.UtilizationErr)
	default:
		if err := domain.ValidateUtilization(parsed.Utilization); err != nil {
			c.logger.Warn("aircraft info invalid, dropping",
				"file", filepath.Base(path), "error", err)
		} else {
			r.utilization = parsed.Utilization
		}
	}
	return r
}

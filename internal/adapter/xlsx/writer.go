package xlsx

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xuri/excelize/v2"

	"github.com/glidewing/flight-log-etl/internal/domain"
)

// masterLogSheet is the sheet the rendered table is inserted into.
const masterLogSheet = "MASTER LOG"

var masterLogHeader = []interface{}{
	"AircraftCommander", "SecondPilot", "Duty", "TakeOffTime", "LandingTime",
	"FlightTime", "SPC", "PLF", "Aircraft", "Date", "P1", "P2",
}

// MasterLogWriter renders the canonical launch batch into a workbook for
// human consumption. It consumes the batch read-only.
type MasterLogWriter struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewMasterLogWriter creates a writer. The clock dates the fallback
// filename when the primary target cannot be written.
func NewMasterLogWriter(clock clockwork.Clock, logger *slog.Logger) *MasterLogWriter {
	return &MasterLogWriter{clock: clock, logger: logger}
}

// Write renders launches to path and returns the path actually written.
// If path cannot be written (typically the workbook is held open), a
// sibling file suffixed with today's date is written instead.
func (w *MasterLogWriter) Write(launches []domain.Launch, path string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", masterLogSheet); err != nil {
		return "", fmt.Errorf("create master log sheet: %w", err)
	}
	if err := f.SetSheetRow(masterLogSheet, "A1", &masterLogHeader); err != nil {
		return "", fmt.Errorf("write master log header: %w", err)
	}

	for i, l := range launches {
		row := []interface{}{
			l.AircraftCommander, l.SecondPilot, l.Duty,
			l.TakeOffTime, l.LandingTime,
			l.FlightTime, l.SPC, l.PLF, l.Aircraft, l.Date, l.P1, l.P2,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(masterLogSheet, cell, &row); err != nil {
			return "", fmt.Errorf("write master log row %d: %w", i+1, err)
		}
	}

	if err := styleMasterLog(f, len(launches)); err != nil {
		return "", err
	}

	err := f.SaveAs(path)
	if err == nil {
		w.logger.Info("master log written", "path", path, "launches", len(launches))
		return path, nil
	}

	// A save failure on the shared drive usually means someone has the
	// workbook open.
	fallback := datedFallbackPath(path, w.clock.Now())
	w.logger.Warn("could not write master log, using dated fallback",
		"path", path, "fallback", fallback, "error", err)
	if err := f.SaveAs(fallback); err != nil {
		return "", fmt.Errorf("write master log: %w", err)
	}
	w.logger.Info("master log written", "path", fallback, "launches", len(launches))
	return fallback, nil
}

func styleMasterLog(f *excelize.File, rows int) error {
	tableRange := fmt.Sprintf("A1:L%d", rows+1)
	if err := f.AddTable(masterLogSheet, &excelize.Table{
		Range:     tableRange,
		Name:      "MasterLog",
		StyleName: "TableStyleMedium1",
	}); err != nil {
		return fmt.Errorf("add master log table: %w", err)
	}

	if err := f.SetColWidth(masterLogSheet, "A", "L", 17); err != nil {
		return fmt.Errorf("set column widths: %w", err)
	}

	dateFormat := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}
	// Column J is Date.
	if err := f.SetColStyle(masterLogSheet, "J", style); err != nil {
		return fmt.Errorf("style date column: %w", err)
	}
	if err := f.SetColWidth(masterLogSheet, "J", "J", 10); err != nil {
		return fmt.Errorf("set date column width: %w", err)
	}
	return nil
}

func datedFallbackPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + now.Format("060102") + ext
}

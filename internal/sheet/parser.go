package sheet

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/glidewing/flight-log-etl/internal/domain"
)

const (
	// LaunchSheet is the required primary table of every log sheet.
	LaunchSheet = "FORMATTED"
	// UtilizationSheet is the optional secondary table.
	UtilizationSheet = "_AIRCRAFT"
)

// excelEpoch is day zero of the 1900 date system. Serial 1 is 1900-01-01.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// timeLayouts are the string forms a date or time cell may arrive in when
// the workbook stores text instead of a serial number.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"15:04:05",
	"15:04",
}

// ParseResult is the outcome of parsing one source workbook.
type ParseResult struct {
	Launches    []domain.Launch
	Utilization []domain.AircraftUtilization

	// HasUtilization reports whether the secondary table was present,
	// regardless of whether it parsed cleanly.
	HasUtilization bool

	// UtilizationErr records why the secondary table was dropped. The
	// launch batch is unaffected; callers treat the utilization batch as
	// absent rather than failing the file.
	UtilizationErr error
}

// Parse reads one source workbook into typed record batches, enforcing
// the fixed schemas. A failure in the primary table aborts the whole file
// with a *SchemaError; a failure in the secondary table is reported as a
// soft error on the result.
func Parse(wb Workbook) (*ParseResult, error) {
	primary, ok := wb.Table(LaunchSheet)
	if !ok {
		return nil, &SchemaError{Sheet: LaunchSheet, Err: errMissingSheet}
	}
	launches, err := parseLaunches(primary)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{Launches: launches}
	if secondary, ok := wb.Table(UtilizationSheet); ok {
		res.HasUtilization = true
		utilization, err := parseUtilization(secondary)
		if err != nil {
			res.UtilizationErr = err
		} else {
			res.Utilization = utilization
		}
	}
	return res, nil
}

func parseLaunches(t *Table) ([]domain.Launch, error) {
	idx, err := columnIndex(t, launchSchema)
	if err != nil {
		return nil, err
	}

	launches := make([]domain.Launch, 0, len(t.Rows))
	for i, row := range t.Rows {
		c := cellReader{sheet: t.Name, row: row, rowNum: i + 1, idx: idx}
		l := domain.Launch{
			AircraftCommander: c.str("AircraftCommander"),
			SecondPilot:       c.str("2ndPilot"),
			Duty:              c.str("Duty"),
			TakeOffTime:       c.time("TakeOffTime"),
			LandingTime:       c.time("LandingTime"),
			FlightTime:        uint16(c.uint("FlightTime", 16)),
			SPC:               uint8(c.uint("SPC", 8)),
			PLF:               c.boolean("PLF"),
			Aircraft:          c.str("Aircraft"),
			Date:              c.time("Date"),
			P1:                c.boolean("P1"),
			P2:                c.boolean("P2"),
		}
		if c.err != nil {
			return nil, c.err
		}
		launches = append(launches, l)
	}
	return launches, nil
}

func parseUtilization(t *Table) ([]domain.AircraftUtilization, error) {
	idx, err := columnIndex(t, utilizationSchema)
	if err != nil {
		return nil, err
	}

	utilization := make([]domain.AircraftUtilization, 0, len(t.Rows))
	for i, row := range t.Rows {
		c := cellReader{sheet: t.Name, row: row, rowNum: i + 1, idx: idx}
		u := domain.AircraftUtilization{
			Date:          c.time("Date"),
			Aircraft:      c.str("Aircraft"),
			LaunchesAfter: uint32(c.uint("Launches After", 32)),
			HoursAfter:    c.elapsedMinutes("Hours After"),
		}
		if c.err != nil {
			return nil, c.err
		}
		utilization = append(utilization, u)
	}
	return utilization, nil
}

// cellReader coerces the cells of one row against the schema, recording
// the first failure as a *SchemaError.
type cellReader struct {
	sheet  string
	row    []string
	rowNum int
	idx    map[string]int
	err    error
}

func (c *cellReader) raw(column string) string {
	i, ok := c.idx[column]
	if !ok || i >= len(c.row) {
		return ""
	}
	return strings.TrimSpace(c.row[i])
}

func (c *cellReader) fail(column string, err error) {
	if c.err == nil {
		c.err = &SchemaError{Sheet: c.sheet, Column: column, Row: c.rowNum, Err: err}
	}
}

func (c *cellReader) str(column string) string {
	return c.raw(column)
}

// time parses a date or time cell. An empty cell yields the zero time
// (null); the validator decides whether nulls are acceptable.
func (c *cellReader) time(column string) time.Time {
	s := c.raw(column)
	if s == "" {
		return time.Time{}
	}
	t, err := parseTimeCell(s)
	if err != nil {
		c.fail(column, err)
		return time.Time{}
	}
	return t
}

func (c *cellReader) uint(column string, bits int) uint64 {
	s := c.raw(column)
	if s == "" {
		return 0
	}
	// Serial-valued numeric cells can surface as "30" or "30.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f == math.Trunc(f) {
		v := uint64(f)
		if bits < 64 && v > (uint64(1)<<bits)-1 {
			c.fail(column, fmt.Errorf("value %d overflows uint%d", v, bits))
			return 0
		}
		return v
	}
	c.fail(column, fmt.Errorf("not an unsigned integer: %q", s))
	return 0
}

func (c *cellReader) boolean(column string) bool {
	s := strings.ToLower(c.raw(column))
	switch s {
	case "", "false", "0", "no":
		return false
	case "true", "1", "yes":
		return true
	default:
		c.fail(column, fmt.Errorf("not a boolean: %q", s))
		return false
	}
}

// elapsedMinutes derives whole minutes from a cumulative elapsed-time
// cell. Unlike the other coercions an empty cell is an error: a missing
// reading makes the whole secondary table untrustworthy.
func (c *cellReader) elapsedMinutes(column string) int64 {
	s := c.raw(column)
	if s == "" {
		c.fail(column, errors.New("empty elapsed-time cell"))
		return 0
	}
	minutes, err := parseElapsedMinutes(s)
	if err != nil {
		c.fail(column, err)
		return 0
	}
	return minutes
}

// parseTimeCell accepts either an Excel serial number or one of the known
// textual layouts.
func parseTimeCell(s string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToTime(serial), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date/time value: %q", s)
}

// serialToTime converts an Excel 1900-system serial to a UTC time. The
// fractional part is the time of day; seconds are rounded to absorb float
// representation error.
func serialToTime(serial float64) time.Time {
	days := math.Trunc(serial)
	frac := serial - days
	secs := math.Round(frac * 24 * 60 * 60)
	return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// parseElapsedMinutes accepts "H:MM", "H:MM:SS" (hours unbounded), an
// optional "<n> days " prefix, or a plain serial day count. Seconds are
// truncated.
func parseElapsedMinutes(s string) (int64, error) {
	var days int64
	if i := strings.Index(s, "days"); i >= 0 {
		d, err := strconv.ParseInt(strings.TrimSpace(s[:i]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
		}
		days = d
		s = strings.TrimSpace(s[i+len("days"):])
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
		}
		hours, err1 := strconv.ParseInt(parts[0], 10, 64)
		mins, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil || hours < 0 || mins < 0 || mins > 59 {
			return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
		}
		if len(parts) == 3 {
			if _, err := strconv.ParseInt(parts[2], 10, 64); err != nil {
				return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
			}
		}
		return days*24*60 + hours*60 + mins, nil
	}

	// A bare number is an Excel serial duration in days.
	if s != "" && days == 0 {
		serialDays, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
		}
		return int64(math.Round(serialDays * 24 * 60)), nil
	}
	if days > 0 && s == "" {
		return days * 24 * 60, nil
	}
	return 0, fmt.Errorf("unrecognised elapsed time: %q", s)
}

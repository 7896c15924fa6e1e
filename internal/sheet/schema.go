package sheet

import (
	"errors"
	"fmt"
)

// Kind enumerates the cell types a schema column can require.
type Kind int

const (
	KindString Kind = iota
	KindTime
	KindUint8
	KindUint16
	KindUint32
	KindBool
	// KindElapsedMinutes is a cumulative elapsed time ("256:30:00",
	// "10 days 16:30:00", or an Excel serial day count) coerced to whole
	// minutes.
	KindElapsedMinutes
)

// Column is one entry of an ordered schema description.
type Column struct {
	Name string
	Kind Kind
}

// launchSchema is the fixed column set of the FORMATTED sheet.
var launchSchema = []Column{
	{Name: "AircraftCommander", Kind: KindString},
	{Name: "2ndPilot", Kind: KindString},
	{Name: "Duty", Kind: KindString},
	{Name: "TakeOffTime", Kind: KindTime},
	{Name: "LandingTime", Kind: KindTime},
	{Name: "FlightTime", Kind: KindUint16},
	{Name: "SPC", Kind: KindUint8},
	{Name: "PLF", Kind: KindBool},
	{Name: "Aircraft", Kind: KindString},
	{Name: "Date", Kind: KindTime},
	{Name: "P1", Kind: KindBool},
	{Name: "P2", Kind: KindBool},
}

// utilizationSchema is the fixed column set of the _AIRCRAFT sheet.
var utilizationSchema = []Column{
	{Name: "Date", Kind: KindTime},
	{Name: "Aircraft", Kind: KindString},
	{Name: "Launches After", Kind: KindUint32},
	{Name: "Hours After", Kind: KindElapsedMinutes},
}

var errMissingSheet = errors.New("sheet not found")

// SchemaError reports a malformed or missing column, cell, or sheet.
// The failure is scoped to one table of one file; the caller skips that
// table (or file) and continues.
type SchemaError struct {
	Sheet  string
	Column string
	Row    int // 1-based data row; 0 for sheet- or column-level problems
	Err    error
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
	case e.Row == 0:
		return fmt.Sprintf("sheet %q column %q: %v", e.Sheet, e.Column, e.Err)
	default:
		return fmt.Sprintf("sheet %q column %q row %d: %v", e.Sheet, e.Column, e.Row, e.Err)
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

// columnIndex maps each schema column to its position in the header,
// failing with a SchemaError on the first missing column.
func columnIndex(t *Table, schema []Column) (map[string]int, error) {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		idx[h] = i
	}
	for _, col := range schema {
		if _, ok := idx[col.Name]; !ok {
			return nil, &SchemaError{Sheet: t.Name, Column: col.Name, Err: errors.New("column missing")}
		}
	}
	return idx, nil
}

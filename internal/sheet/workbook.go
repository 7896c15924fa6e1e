package sheet

// Table is one sheet of a source workbook: a header row plus data rows,
// every cell as its raw string value. Numeric and date cells may arrive as
// Excel serial numbers; the parser coerces them against the schema.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Workbook exposes the named tables of one source file. Implementations
// live in the adapter layer; the parser never touches the file format.
type Workbook interface {
	Table(name string) (*Table, bool)
}

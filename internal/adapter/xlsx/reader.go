package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/glidewing/flight-log-etl/internal/sheet"
)

// Opener implements collate.Opener over .xlsx files on disk.
type Opener struct{}

// Open reads every sheet of the workbook at path into memory and closes
// the file. Cells are read raw, so dates and numbers surface as Excel
// serial values for the parser to coerce.
func (Opener) Open(path string) (sheet.Workbook, error) {
	return OpenWorkbook(path)
}

// OpenWorkbook reads an .xlsx file into a sheet.Workbook.
func OpenWorkbook(path string) (sheet.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := workbook{tables: make(map[string]*sheet.Table)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s of %s: %w", name, path, err)
		}

		t := &sheet.Table{Name: name}
		if len(rows) > 0 {
			t.Header = rows[0]
			t.Rows = rows[1:]
		}
		wb.tables[name] = t
	}
	return wb, nil
}

type workbook struct {
	tables map[string]*sheet.Table
}

func (w workbook) Table(name string) (*sheet.Table, bool) {
	t, ok := w.tables[name]
	return t, ok
}

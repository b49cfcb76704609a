package models

// Row is an ordered, sparse sequence of cells. Nil entries are absent cells.
type Row struct {
	// Cells holds the row's cells indexed by column.
	Cells []*Cell `json:"cells"`
}

// Cell returns the cell at col, or nil when absent.
func (r *Row) Cell(col int) *Cell {
	if r == nil || col < 0 || col >= len(r.Cells) {
		return nil
	}
	return r.Cells[col]
}

// Put stores c at col, growing the row as needed. It is used by readers
// that materialize cells from a file; the editing primitives never call it.
func (r *Row) Put(col int, c *Cell) {
	for len(r.Cells) <= col {
		r.Cells = append(r.Cells, nil)
	}
	r.Cells[col] = c
}

// Sheet is one named page of a workbook: an ordered, sparse sequence of rows.
type Sheet struct {
	// Name is the sheet (tab) name.
	Name string `json:"name"`
	// Rows holds the rows indexed by row; nil entries are absent rows.
	Rows []*Row `json:"rows"`
	// RemovedRows journals row indices removed since the last flush, in order.
	RemovedRows []int `json:"-"`
}

// NewSheet builds a sheet from string rows. Empty strings become absent
// cells. It is mostly useful for tests and in-memory fixtures.
func NewSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name}
	for _, values := range rows {
		row := &Row{}
		for col, v := range values {
			if v == "" {
				continue
			}
			row.Put(col, &Cell{Kind: CellString, Value: v})
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// LastRowNum returns the index of the last row slot, or -1 for an empty sheet.
func (s *Sheet) LastRowNum() int {
	return len(s.Rows) - 1
}

// Row returns the row at index i, or nil when absent.
func (s *Sheet) Row(i int) *Row {
	if i < 0 || i >= len(s.Rows) {
		return nil
	}
	return s.Rows[i]
}

// Cell returns the cell at the coordinate, or nil when absent.
func (s *Sheet) Cell(at Coordinate) *Cell {
	return s.Row(at.Row).Cell(at.Col)
}

// RemoveRow deletes row i and shifts every following row up by one.
func (s *Sheet) RemoveRow(i int) {
	if i < 0 || i >= len(s.Rows) {
		return
	}
	s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
	s.RemovedRows = append(s.RemovedRows, i)
}

// ClearJournal forgets removed rows and dirty flags after a flush.
func (s *Sheet) ClearJournal() {
	s.RemovedRows = nil
	for _, row := range s.Rows {
		if row == nil {
			continue
		}
		for _, c := range row.Cells {
			if c != nil {
				c.Dirty = false
			}
		}
	}
}

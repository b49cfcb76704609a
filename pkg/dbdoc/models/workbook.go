package models

// Workbook is an ordered collection of named sheets.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string `json:"name"`
	// Sheets holds the sheets in tab order.
	Sheets []*Sheet `json:"sheets"`
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Replace swaps the sheet with the same name for s, or appends s.
func (w *Workbook) Replace(s *Sheet) {
	for i, existing := range w.Sheets {
		if existing.Name == s.Name {
			w.Sheets[i] = s
			return
		}
	}
	w.Sheets = append(w.Sheets, s)
}

// Remove drops the named sheet from the workbook.
func (w *Workbook) Remove(name string) {
	for i, s := range w.Sheets {
		if s.Name == name {
			w.Sheets = append(w.Sheets[:i], w.Sheets[i+1:]...)
			return
		}
	}
}

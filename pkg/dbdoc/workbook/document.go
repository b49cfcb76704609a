// Package workbook binds the in-memory workbook container to an xlsx file.
//
// The editing primitives only touch the container; a Document replays their
// effects (removed rows, written cells, hyperlinks) onto the underlying
// excelize file on Flush, so template styling survives untouched.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/parser"
)

var (
	// ErrSheetNotFound is returned when a named sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrSheetExists is returned when cloning onto an existing sheet name.
	ErrSheetExists = errors.New("sheet already exists")
	// ErrSheetName is returned for names the xlsx format cannot hold.
	ErrSheetName = errors.New("invalid sheet name")
)

// MaxSheetNameLength is the xlsx limit on sheet name length.
const MaxSheetNameLength = 31

// Document is an open workbook file together with its in-memory model.
type Document struct {
	f  *excelize.File
	wb *models.Workbook
}

// Open opens an xlsx workbook, transparently decompressing .gz, .bz2, .xz
// and .zst files.
func Open(path string) (*Document, error) {
	compression, plain := DetectCompression(path)
	if compression == CompressionNone {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		return FromFile(filepath.Base(path), f)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, release, err := newReader(compression, file)
	if err != nil {
		return nil, err
	}
	defer release()

	// excelize needs random access, so compressed input is buffered
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	return OpenReader(filepath.Base(plain), bytes.NewReader(data))
}

// OpenReader opens an xlsx workbook from r. name becomes the workbook name.
func OpenReader(name string, r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return FromFile(name, f)
}

// FromFile loads every sheet of an already open excelize file. The Document
// takes ownership of f.
func FromFile(name string, f *excelize.File) (*Document, error) {
	wb := &models.Workbook{Name: name}
	for _, sheetName := range f.GetSheetList() {
		s, err := parser.ExtractSheet(f, sheetName)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, s)
	}
	return &Document{f: f, wb: wb}, nil
}

// Workbook returns the in-memory model. Edits to it are written on Flush.
func (d *Document) Workbook() *models.Workbook {
	return d.wb
}

// Flush replays removed rows and writes every dirty cell into the file.
func (d *Document) Flush() error {
	for _, s := range d.wb.Sheets {
		if err := d.flushSheet(s); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.Name, err)
		}
		s.ClearJournal()
	}
	return nil
}

func (d *Document) flushSheet(s *models.Sheet) error {
	for _, removed := range s.RemovedRows {
		if err := d.f.RemoveRow(s.Name, removed+1); err != nil {
			return err
		}
	}

	for rowIdx, row := range s.Rows {
		if row == nil {
			continue
		}
		for colIdx, c := range row.Cells {
			if c == nil || !c.Dirty {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := d.f.SetCellStr(s.Name, cellName, c.Value); err != nil {
				return err
			}
			if c.Link != nil {
				if err := d.f.SetCellHyperLink(s.Name, cellName, c.Link.Address(), "Location"); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// SaveAs flushes pending edits and writes the workbook to path, creating
// parent directories as needed.
func (d *Document) SaveAs(path string) error {
	if err := d.Flush(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return d.f.SaveAs(path)
}

// Write flushes pending edits and writes the workbook to w.
func (d *Document) Write(w io.Writer) error {
	if err := d.Flush(); err != nil {
		return err
	}
	return d.f.Write(w)
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.f.Close()
}

// ValidateSheetName rejects names the xlsx format cannot store.
func ValidateSheetName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > MaxSheetNameLength {
		return fmt.Errorf("%w: %q must be 1 to %d characters", ErrSheetName, name, MaxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) || strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("%w: %q contains a forbidden character", ErrSheetName, name)
	}
	return nil
}

// CloneSheet copies src (values, styles and print area) to a new sheet dst,
// appended after the last sheet, and loads it into the model.
func (d *Document) CloneSheet(src, dst string) (*models.Sheet, error) {
	if err := ValidateSheetName(dst); err != nil {
		return nil, err
	}
	if d.wb.Sheet(dst) != nil {
		return nil, fmt.Errorf("%w: %s", ErrSheetExists, dst)
	}
	if err := d.Flush(); err != nil {
		return nil, err
	}

	srcIdx, err := d.sheetIndex(src)
	if err != nil {
		return nil, err
	}
	dstIdx, err := d.f.NewSheet(dst)
	if err != nil {
		return nil, err
	}
	if err := d.f.CopySheet(srcIdx, dstIdx); err != nil {
		return nil, err
	}
	if err := parser.SetPrintAreas(d.f, dst, parser.ExtractPrintAreas(d.f)[src]); err != nil {
		return nil, err
	}

	return d.reload(dst)
}

// DuplicateRow inserts n copies of the 0-based row directly below it and
// reloads the sheet model. Pending edits are flushed first.
func (d *Document) DuplicateRow(sheetName string, row, n int) (*models.Sheet, error) {
	if _, err := d.sheetIndex(sheetName); err != nil {
		return nil, err
	}
	if err := d.Flush(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := d.f.DuplicateRow(sheetName, row+1); err != nil {
			return nil, err
		}
	}
	return d.reload(sheetName)
}

// DeleteSheet removes a sheet from both the file and the model.
func (d *Document) DeleteSheet(name string) error {
	if _, err := d.sheetIndex(name); err != nil {
		return err
	}
	if err := d.f.DeleteSheet(name); err != nil {
		return err
	}
	d.wb.Remove(name)
	return nil
}

// SetActiveSheet selects the sheet shown when the file is opened.
func (d *Document) SetActiveSheet(name string) error {
	idx, err := d.sheetIndex(name)
	if err != nil {
		return err
	}
	d.f.SetActiveSheet(idx)
	return nil
}

func (d *Document) sheetIndex(name string) (int, error) {
	idx, err := d.f.GetSheetIndex(name)
	if err != nil {
		return -1, err
	}
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return idx, nil
}

func (d *Document) reload(name string) (*models.Sheet, error) {
	s, err := parser.ExtractSheet(d.f, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	d.wb.Replace(s)
	return s, nil
}

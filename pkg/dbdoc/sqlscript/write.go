package sqlscript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

const (
	// TableFile holds table description statements.
	TableFile = "TableSP.sql"
	// ColumnFile holds column description statements.
	ColumnFile = "ColumnSP.sql"
)

// WriteMode selects how a block reaches its script file.
type WriteMode int

const (
	// ModeAppend creates the file or appends to it. Running twice without
	// Clean leaves every statement in the file twice.
	ModeAppend WriteMode = iota
	// ModeReplace atomically replaces the file content with the block.
	ModeReplace
)

func (m WriteMode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	case ModeReplace:
		return "replace"
	default:
		return fmt.Sprintf("WriteMode(%d)", int(m))
	}
}

// ParseWriteMode parses "append" or "replace".
func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(s) {
	case "append":
		return ModeAppend, nil
	case "replace":
		return ModeReplace, nil
	default:
		return ModeAppend, fmt.Errorf("invalid write mode: %s (must be append or replace)", s)
	}
}

// WriteBlock writes block to path using mode. No separator is added between
// an existing file's content and an appended block.
func WriteBlock(path, block string, mode WriteMode) error {
	switch mode {
	case ModeReplace:
		return atomic.WriteFile(path, strings.NewReader(block))
	case ModeAppend:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.WriteString(block); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unknown write mode %s", mode)
	}
}

// Result describes one Emit run.
type Result struct {
	TableFile  string `json:"table_file" yaml:"table_file"`
	ColumnFile string `json:"column_file" yaml:"column_file"`
	Tables     int    `json:"tables" yaml:"tables"`
	Columns    int    `json:"columns" yaml:"columns"`
}

// Emit renders pairs into the table and column blocks and writes them to
// TableFile and ColumnFile under dir. Both files are written even when a
// block is empty.
func Emit(pairs []models.Pair, dir string, mode WriteMode, r Renderer) (Result, error) {
	res := Result{
		TableFile:  filepath.Join(dir, TableFile),
		ColumnFile: filepath.Join(dir, ColumnFile),
	}
	for _, p := range pairs {
		if p.Kind == models.KindTable {
			res.Tables++
		} else {
			res.Columns++
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, err
	}
	if err := WriteBlock(res.TableFile, Block(pairs, models.KindTable, r), mode); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", res.TableFile, err)
	}
	if err := WriteBlock(res.ColumnFile, Block(pairs, models.KindColumn, r), mode); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", res.ColumnFile, err)
	}

	return res, nil
}

// Clean deletes both script files under dir if they exist.
func Clean(dir string) error {
	for _, name := range []string{TableFile, ColumnFile} {
		err := os.Remove(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Package dbdoc documents database tables into an xlsx template and turns
// descriptions edited in that workbook back into SQL scripts.
package dbdoc

import (
	"log/slog"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sqlscript"
)

// Options configures export and harvest behavior.
type Options struct {
	// IndexSheet is the table index sheet. Defaults to "Table List".
	IndexSheet string
	// TableTemplate is the sheet cloned once per table on export and skipped
	// on harvest. Defaults to "Table Template".
	TableTemplate string
	// FlagMark is written for true flags (nullable, PK, FK, identity).
	// If nil, defaults to "Y".
	FlagMark *string
	// KeepTemplate keeps the per-table template sheet in the exported workbook.
	KeepTemplate bool
	// Renderer renders harvested pairs. If nil, sqlscript.MSSQL{} is used.
	Renderer sqlscript.Renderer
	// ScriptMode selects append or replace for the script files.
	ScriptMode sqlscript.WriteMode
	// Logger receives progress messages. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		IndexSheet:    IndexSheet,
		TableTemplate: TableTemplate,
		ScriptMode:    sqlscript.ModeAppend,
	}
}

func (o Options) indexSheet() string {
	if o.IndexSheet == "" {
		return IndexSheet
	}
	return o.IndexSheet
}

func (o Options) tableTemplate() string {
	if o.TableTemplate == "" {
		return TableTemplate
	}
	return o.TableTemplate
}

func (o Options) mark(flag bool) string {
	if !flag {
		return ""
	}
	if o.FlagMark != nil {
		return *o.FlagMark
	}
	return "Y"
}

func (o Options) renderer() sqlscript.Renderer {
	if o.Renderer != nil {
		return o.Renderer
	}
	return sqlscript.MSSQL{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

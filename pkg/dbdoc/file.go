package dbdoc

import (
	"fmt"
	"os"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sqlscript"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/workbook"
)

// ExportFile fills the template at templatePath with tables and saves the
// result to outputPath. The template file itself is not modified.
func ExportFile(templatePath, outputPath string, tables []models.Table, opts Options) error {
	doc, err := open(templatePath)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := Export(doc, tables, opts); err != nil {
		return err
	}
	if err := doc.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputPath, err)
	}

	opts.logger().Info("workbook written", "path", outputPath, "tables", len(tables))
	return nil
}

// ReadPairs opens an edited workbook and harvests its pairs.
func ReadPairs(workbookPath string, opts Options) ([]models.Pair, error) {
	doc, err := open(workbookPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return Harvest(doc.Workbook(), opts)
}

// HarvestFile harvests an edited workbook and writes TableSP.sql and
// ColumnSP.sql under outputDir using opts.ScriptMode. Deleting earlier
// scripts before an append run is up to the caller (see sqlscript.Clean).
func HarvestFile(workbookPath, outputDir string, opts Options) ([]models.Pair, sqlscript.Result, error) {
	pairs, err := ReadPairs(workbookPath, opts)
	if err != nil {
		return nil, sqlscript.Result{}, err
	}

	res, err := sqlscript.Emit(pairs, outputDir, opts.ScriptMode, opts.renderer())
	if err != nil {
		return pairs, res, err
	}

	opts.logger().Info("scripts written",
		"table_file", res.TableFile, "tables", res.Tables,
		"column_file", res.ColumnFile, "columns", res.Columns,
		"mode", opts.ScriptMode)
	return pairs, res, nil
}

func open(path string) (*workbook.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	doc, err := workbook.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return doc, nil
}

package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// SetPrintAreas defines the sheet-scoped print area of sheetName. It carries
// a template's print setup over to a cloned sheet.
func SetPrintAreas(f *excelize.File, sheetName string, areas []models.PrintArea) error {
	if len(areas) == 0 {
		return nil
	}

	refs := make([]string, 0, len(areas))
	for _, area := range areas {
		start, err := excelize.CoordinatesToCellName(area.C1, area.R1, true)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(area.C2, area.R2, true)
		if err != nil {
			return err
		}
		quoted := strings.ReplaceAll(sheetName, "'", "''")
		refs = append(refs, fmt.Sprintf("'%s'!%s:%s", quoted, start, end))
	}

	return f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: strings.Join(refs, ","),
		Scope:    sheetName,
	})
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea

	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		sheet, rangeStr, ok := splitSheetReference(part)
		if !ok {
			continue
		}
		if sheetName == "" {
			sheetName = sheet
		}
		if area := parseRangeToArea(rangeStr); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to PrintArea.
func parseRangeToArea(rangeStr string) *models.PrintArea {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.PrintArea{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

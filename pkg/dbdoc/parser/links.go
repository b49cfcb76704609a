package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

// ParseLinkAddress parses a document link location such as 'Orders'!A1,
// Orders!$B$2 or #'Orders'!A1. External URLs are rejected.
func ParseLinkAddress(address string) (models.Link, bool) {
	sheet, ref, ok := splitSheetReference(strings.TrimPrefix(address, "#"))
	if !ok {
		return models.Link{}, false
	}

	ref = strings.ReplaceAll(ref, "$", "")
	if _, _, err := excelize.CellNameToCoordinates(ref); err != nil {
		return models.Link{}, false
	}

	return models.Link{Sheet: sheet, Ref: ref}, true
}

// splitSheetReference splits "'Sheet'!ref" into its sheet name and ref.
func splitSheetReference(part string) (string, string, bool) {
	part = strings.TrimSpace(part)
	idx := strings.LastIndex(part, "!")
	if idx <= 0 {
		return "", "", false
	}

	sheet := part[:idx]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	if sheet == "" {
		return "", "", false
	}

	return sheet, part[idx+1:], true
}

package dbdoc

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sheet"
)

// Harvest walks every sheet and collects the (name, description) pairs whose
// description is not blank. The index sheet yields table pairs; every other
// sheet yields column pairs owned by the table named in OwnerCell. The table
// template sheet, if still present, is skipped.
func Harvest(wb *models.Workbook, opts Options) ([]models.Pair, error) {
	log := opts.logger()

	var pairs []models.Pair
	for _, s := range wb.Sheets {
		if s.Name == opts.tableTemplate() {
			log.Debug("skipping template sheet", "sheet", s.Name)
			continue
		}

		kind := models.KindColumn
		if s.Name == opts.indexSheet() {
			kind = models.KindTable
		}

		got, err := HarvestSheet(s, kind)
		if err != nil {
			return nil, NewSheetError(s.Name, "harvest", err)
		}
		log.Debug("sheet harvested", "sheet", s.Name, "kind", kind, "pairs", len(got))
		pairs = append(pairs, got...)
	}

	return pairs, nil
}

// HarvestSheet extracts pairs of one kind from a single sheet. Both header
// labels must be present; there is no default column position.
func HarvestSheet(s *models.Sheet, kind models.Kind) ([]models.Pair, error) {
	nameAt, ok := sheet.FindCellInSheet(s, nameLabel(kind))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHeaderNotFound, nameLabel(kind))
	}
	descAt, ok := sheet.FindCellInSheet(s, descriptionLabel(kind))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHeaderNotFound, descriptionLabel(kind))
	}

	var pairs []models.Pair
	for r := nameAt.Row + 1; r <= s.LastRowNum(); r++ {
		row := s.Row(r)
		name := row.Cell(nameAt.Col).String()
		desc := row.Cell(descAt.Col).String()
		if strings.TrimSpace(desc) == "" {
			continue
		}

		p := models.Pair{Kind: kind, TableName: name, Name: name, Description: desc}
		if kind == models.KindColumn {
			owner := s.Cell(OwnerCell).String()
			if strings.TrimSpace(owner) == "" {
				return nil, fmt.Errorf("%w: cell %s", ErrOwnerNotFound, OwnerCell)
			}
			p.TableName = owner
		}
		pairs = append(pairs, p)
	}

	return pairs, nil
}

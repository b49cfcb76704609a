package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

func newIndexSheet() *models.Sheet {
	return models.NewSheet("Table List", [][]string{
		{"Database Document"},
		{},
		{"Table Name", "Table Description"},
		{"Orders", "Stores customer orders"},
		{"Users", "x"},
		{"{TableName}", "{TableDescription}"},
	})
}

func TestSetCellContent(t *testing.T) {
	s := newIndexSheet()

	require.NoError(t, SetCellContent(s, models.Coordinate{Col: 1, Row: 4}, "Registered users"))
	c := s.Cell(models.Coordinate{Col: 1, Row: 4})
	assert.Equal(t, "Registered users", c.Value)
	assert.True(t, c.Dirty)

	err := SetCellContent(s, models.Coordinate{Col: 1, Row: 1}, "x")
	assert.ErrorIs(t, err, ErrNoCell)

	err = SetCellContent(s, models.Coordinate{Col: 0, Row: 40}, "x")
	assert.ErrorIs(t, err, ErrNoRow)
}

func TestSetCellHyperlink(t *testing.T) {
	s := newIndexSheet()

	require.NoError(t, SetCellHyperlink(s, models.Coordinate{Col: 0, Row: 3}, "Orders", "Orders"))
	c := s.Cell(models.Coordinate{Col: 0, Row: 3})
	require.NotNil(t, c.Link)
	assert.Equal(t, "'Orders'!A1", c.Link.Address())
	assert.Equal(t, "Orders", c.Value)

	err := SetCellHyperlink(s, models.Coordinate{Col: 5, Row: 3}, "Orders", "Orders")
	assert.ErrorIs(t, err, ErrNoCell)
}

func TestSetFirstMatchContent(t *testing.T) {
	s := newIndexSheet()

	require.NoError(t, SetFirstMatchContent(s, "{TableDescription}", "Audit log"))
	assert.Equal(t, "Audit log", s.Cell(models.Coordinate{Col: 1, Row: 5}).Value)

	require.NoError(t, SetFirstMatchContent(s, "{Missing}", "ignored"))
}

func TestSetFirstMatchContentInRow(t *testing.T) {
	tests := []struct {
		name     string
		rowIndex int
		label    string
		changed  bool
	}{
		{"match in row", 5, "{TableName}", true},
		{"label in other row", 3, "{TableName}", false},
		{"row past used range", 6, "{TableName}", false},
		{"negative row", -1, "{TableName}", false},
		{"absent row slot", 1, "{TableName}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newIndexSheet()
			require.NoError(t, SetFirstMatchContentInRow(s, tt.rowIndex, tt.label, "AuditLog"))

			_, stillThere := FindCellInSheet(s, "{TableName}")
			assert.Equal(t, !tt.changed, stillThere)
		})
	}
}

func TestSetFirstMatchHyperlinkInRow(t *testing.T) {
	s := newIndexSheet()

	require.NoError(t, SetFirstMatchHyperlinkInRow(s, 5, "{TableName}", "AuditLog", "AuditLog"))
	c := s.Cell(models.Coordinate{Col: 0, Row: 5})
	assert.Equal(t, "AuditLog", c.Value)
	require.NotNil(t, c.Link)
	assert.Equal(t, models.Link{Sheet: "AuditLog", Ref: "A1"}, *c.Link)

	// the last used row is still addressable
	require.NoError(t, SetFirstMatchHyperlinkInRow(s, s.LastRowNum(), "{TableDescription}", "d", "AuditLog"))
	assert.Equal(t, "d", s.Cell(models.Coordinate{Col: 1, Row: 5}).Value)
}

func TestRemoveFirstMatchRow(t *testing.T) {
	s := newIndexSheet()
	before := s.LastRowNum()

	assert.True(t, RemoveFirstMatchRow(s, "Users"))
	assert.Equal(t, before-1, s.LastRowNum())
	assert.Equal(t, []int{4}, s.RemovedRows)

	// the placeholder row moved up from 5 to 4
	at, ok := FindCellInSheet(s, "{TableName}")
	require.True(t, ok)
	assert.Equal(t, 4, at.Row)
	at, ok = FindCellInSheet(s, "Orders")
	require.True(t, ok)
	assert.Equal(t, 3, at.Row)

	assert.False(t, RemoveFirstMatchRow(s, "Users"))
	assert.Equal(t, before-1, s.LastRowNum())
	assert.Equal(t, []int{4}, s.RemovedRows)
}

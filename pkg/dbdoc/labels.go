package dbdoc

import "github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"

// Sheet names of the template contract.
const (
	IndexSheet    = "Table List"
	TableTemplate = "Table Template"
)

// Header labels located by the harvester. They are "<Kind> Name" and
// "<Kind> Description" for the two pair kinds.
const (
	LabelTableName         = "Table Name"
	LabelTableDescription  = "Table Description"
	LabelColumnName        = "Column Name"
	LabelColumnDescription = "Column Description"
)

// Placeholders filled by the exporter.
const (
	PlaceholderTableNo          = "{TableNo}"
	PlaceholderTableName        = "{TableName}"
	PlaceholderTableDescription = "{TableDescription}"
	PlaceholderBackLink         = "{BackLink}"

	PlaceholderNo                = "{No}"
	PlaceholderColumnName        = "{ColumnName}"
	PlaceholderType              = "{Type}"
	PlaceholderNullable          = "{Nullable}"
	PlaceholderPK                = "{PK}"
	PlaceholderFK                = "{FK}"
	PlaceholderFKReference       = "{FKReference}"
	PlaceholderIdentity          = "{Identity}"
	PlaceholderDefault           = "{Default}"
	PlaceholderColumnDescription = "{ColumnDescription}"
)

// OwnerCell holds the owning table name on every per-table sheet. It is a
// fixed position, not a searched label; templates must keep it free.
var OwnerCell = models.Coordinate{Col: 2, Row: 0}

func nameLabel(kind models.Kind) string {
	return string(kind) + " Name"
}

func descriptionLabel(kind models.Kind) string {
	return string(kind) + " Description"
}

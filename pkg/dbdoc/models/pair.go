package models

// Kind tells whether a harvested pair documents a table or a column.
type Kind string

const (
	KindTable  Kind = "Table"
	KindColumn Kind = "Column"
)

// Pair is an (entity name, description) value read back from an edited workbook.
type Pair struct {
	// Kind is Table or Column.
	Kind Kind `json:"kind" yaml:"kind"`
	// TableName is the owning table; equal to Name for table pairs.
	TableName string `json:"table_name" yaml:"table_name"`
	// Name is the table or column name.
	Name string `json:"name" yaml:"name"`
	// Description is the edited description text.
	Description string `json:"description" yaml:"description"`
}

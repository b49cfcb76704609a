package models

// Table is a documented database table.
type Table struct {
	// Schema is the owning database schema (e.g. "dbo").
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
	// Name is the table name without schema qualification.
	Name string `json:"name" yaml:"name"`
	// Description is the stored table description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Columns holds the table's columns in ordinal order.
	Columns []Column `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Column is a documented table column.
type Column struct {
	// TableName is the owning table.
	TableName string `json:"table_name" yaml:"table_name"`
	// Ordinal is the 1-based column position.
	Ordinal int `json:"ordinal" yaml:"ordinal"`
	// Name is the column name.
	Name string `json:"name" yaml:"name"`
	// FullType is the full type text, e.g. "nvarchar(50)".
	FullType string `json:"full_type" yaml:"full_type"`
	// Nullable reports whether NULL is allowed.
	Nullable bool `json:"nullable" yaml:"nullable"`
	// IsPrimaryKey reports membership in the primary key.
	IsPrimaryKey bool `json:"is_primary_key" yaml:"is_primary_key"`
	// IsForeignKey reports membership in a foreign key.
	IsForeignKey bool `json:"is_foreign_key" yaml:"is_foreign_key"`
	// FKReference is the referenced column, e.g. "Users(Id)".
	FKReference string `json:"fk_reference,omitempty" yaml:"fk_reference,omitempty"`
	// IsIdentity reports an identity / auto-increment column.
	IsIdentity bool `json:"is_identity" yaml:"is_identity"`
	// Default is the default value expression.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// Description is the stored column description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

// sqlite has no schemas and no comment storage, so descriptions are empty.
type sqlite struct{}

func (sqlite) defaultSchema() string { return "main" }

func (sqlite) tables(ctx context.Context, db *sql.DB, _ string) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	return queryStrings(ctx, db, query)
}

func (sqlite) description(ctx context.Context, db *sql.DB, _, table string) (string, error) {
	query := `SELECT '' FROM sqlite_master WHERE type = 'table' AND name = ?`
	return queryDescription(ctx, db, table, query, table)
}

func (s sqlite) columns(ctx context.Context, db *sql.DB, _, table string) ([]models.Column, error) {
	query := `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	pkCount := 0
	for rows.Next() {
		var col models.Column
		var cid, notNull, pk int
		var def sql.NullString

		if err := rows.Scan(&cid, &col.Name, &col.FullType, &notNull, &def, &pk); err != nil {
			return nil, err
		}

		col.Ordinal = cid + 1
		col.Nullable = notNull == 0 && pk == 0
		col.IsPrimaryKey = pk > 0
		col.Default = def.String
		if pk > 0 {
			pkCount++
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	// a lone INTEGER PRIMARY KEY aliases the rowid
	if pkCount == 1 {
		for i := range columns {
			if columns[i].IsPrimaryKey && strings.EqualFold(columns[i].FullType, "INTEGER") {
				columns[i].IsIdentity = true
			}
		}
	}

	references, err := s.foreignKeys(ctx, db, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get foreign keys: %w", err)
	}
	for i := range columns {
		if ref, ok := references[columns[i].Name]; ok {
			columns[i].IsForeignKey = true
			columns[i].FKReference = ref
		}
	}

	return columns, nil
}

func (sqlite) foreignKeys(ctx context.Context, db *sql.DB, table string) (map[string]string, error) {
	query := `SELECT "from", "table", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string]string)
	for rows.Next() {
		var from, toTable string
		var toColumn sql.NullString
		if err := rows.Scan(&from, &toTable, &toColumn); err != nil {
			return nil, err
		}
		if _, ok := refs[from]; !ok {
			refs[from] = reference(toTable, toColumn.String)
		}
	}
	return refs, rows.Err()
}

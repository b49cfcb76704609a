package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

type postgres struct{}

func (postgres) defaultSchema() string { return "public" }

func (postgres) tables(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return queryStrings(ctx, db, query, schema)
}

func (postgres) description(ctx context.Context, db *sql.DB, schema, table string) (string, error) {
	query := `
		SELECT obj_description(c.oid, 'pg_class')
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2 AND c.relkind IN ('r', 'p')
	`
	return queryDescription(ctx, db, table, query, schema, table)
}

func (p postgres) columns(ctx context.Context, db *sql.DB, schema, table string) ([]models.Column, error) {
	query := `
		SELECT
			a.attnum,
			a.attname,
			format_type(a.atttypid, a.atttypmod),
			NOT a.attnotnull,
			a.attidentity <> '',
			pg_get_expr(d.adbin, d.adrelid),
			col_description(c.oid, a.attnum)
		FROM pg_attribute a
		JOIN pg_class c ON c.oid = a.attrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum
	`

	rows, err := db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		var def, desc sql.NullString

		err := rows.Scan(&col.Ordinal, &col.Name, &col.FullType, &col.Nullable, &col.IsIdentity, &def, &desc)
		if err != nil {
			return nil, err
		}

		col.Default = def.String
		col.Description = desc.String
		if strings.HasPrefix(col.Default, "nextval(") {
			col.IsIdentity = true
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, table)
	}

	primaryKeys, err := p.primaryKeys(ctx, db, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary keys: %w", err)
	}
	references, err := p.foreignKeys(ctx, db, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get foreign keys: %w", err)
	}

	for i := range columns {
		columns[i].IsPrimaryKey = primaryKeys[columns[i].Name]
		if ref, ok := references[columns[i].Name]; ok {
			columns[i].IsForeignKey = true
			columns[i].FKReference = ref
		}
	}

	return columns, nil
}

func (postgres) primaryKeys(ctx context.Context, db *sql.DB, schema, table string) (map[string]bool, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.table_constraints tc
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND kcu.table_schema = $1
			AND kcu.table_name = $2
		ORDER BY kcu.ordinal_position
	`

	names, err := queryStrings(ctx, db, query, schema, table)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(names))
	for _, n := range names {
		keys[n] = true
	}
	return keys, nil
}

// foreignKeys maps each referencing column to its first "table(column)" target.
func (postgres) foreignKeys(ctx context.Context, db *sql.DB, schema, table string) (map[string]string, error) {
	query := `
		SELECT
			kcu1.column_name,
			kcu2.table_name,
			kcu2.column_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu1
			ON kcu1.constraint_name = rc.constraint_name
			AND kcu1.table_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage kcu2
			ON kcu2.constraint_name = rc.unique_constraint_name
			AND kcu2.table_schema = rc.unique_constraint_schema
			AND kcu2.ordinal_position = kcu1.ordinal_position
		WHERE kcu1.table_schema = $1 AND kcu1.table_name = $2
		ORDER BY kcu1.column_name, rc.constraint_name
	`

	rows, err := db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string]string)
	for rows.Next() {
		var from, toTable, toColumn string
		if err := rows.Scan(&from, &toTable, &toColumn); err != nil {
			return nil, err
		}
		if _, ok := refs[from]; !ok {
			refs[from] = reference(toTable, toColumn)
		}
	}
	return refs, rows.Err()
}

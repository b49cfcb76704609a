package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

type sqlServer struct{}

func (sqlServer) defaultSchema() string { return "dbo" }

func (sqlServer) tables(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	query := `
		SELECT t.name
		FROM sys.tables t
		WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.is_ms_shipped = 0
		ORDER BY t.name
	`
	return queryStrings(ctx, db, query, schema)
}

func (sqlServer) description(ctx context.Context, db *sql.DB, schema, table string) (string, error) {
	query := `
		SELECT CAST(ep.value AS nvarchar(max))
		FROM sys.tables t
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = t.object_id
			AND ep.minor_id = 0
			AND ep.class = 1
			AND ep.name = 'MS_Description'
		WHERE SCHEMA_NAME(t.schema_id) = @p1 AND t.name = @p2
	`
	return queryDescription(ctx, db, table, query, schema, table)
}

func (sqlServer) columns(ctx context.Context, db *sql.DB, schema, table string) ([]models.Column, error) {
	query := `
		SELECT
			c.column_id,
			c.name,
			ty.name,
			c.max_length,
			c.precision,
			c.scale,
			c.is_nullable,
			c.is_identity,
			OBJECT_DEFINITION(c.default_object_id),
			CAST(ep.value AS nvarchar(max)),
			CASE WHEN pk.column_id IS NULL THEN 0 ELSE 1 END,
			rt.name,
			rc.name
		FROM sys.columns c
		JOIN sys.types ty ON ty.user_type_id = c.user_type_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = c.object_id
			AND ep.minor_id = c.column_id
			AND ep.class = 1
			AND ep.name = 'MS_Description'
		LEFT JOIN (
			SELECT ic.object_id, ic.column_id
			FROM sys.index_columns ic
			JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
			WHERE i.is_primary_key = 1
		) pk ON pk.object_id = c.object_id AND pk.column_id = c.column_id
		LEFT JOIN sys.foreign_key_columns fkc
			ON fkc.parent_object_id = c.object_id AND fkc.parent_column_id = c.column_id
		LEFT JOIN sys.tables rt ON rt.object_id = fkc.referenced_object_id
		LEFT JOIN sys.columns rc
			ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
		WHERE c.object_id = OBJECT_ID(QUOTENAME(@p1) + '.' + QUOTENAME(@p2))
		ORDER BY c.column_id
	`

	rows, err := db.QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	seen := make(map[int]bool)
	for rows.Next() {
		var col models.Column
		var typeName string
		var maxLength, precision, scale int
		var isPK int
		var def, desc, refTable, refColumn sql.NullString

		err := rows.Scan(
			&col.Ordinal,
			&col.Name,
			&typeName,
			&maxLength,
			&precision,
			&scale,
			&col.Nullable,
			&col.IsIdentity,
			&def,
			&desc,
			&isPK,
			&refTable,
			&refColumn,
		)
		if err != nil {
			return nil, err
		}

		// a column in several foreign keys yields one row per key
		if seen[col.Ordinal] {
			continue
		}
		seen[col.Ordinal] = true

		col.FullType = SQLServerType(typeName, maxLength, precision, scale)
		col.IsPrimaryKey = isPK == 1
		col.Default = def.String
		col.Description = desc.String
		if refTable.Valid {
			col.IsForeignKey = true
			col.FKReference = reference(refTable.String, refColumn.String)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, table)
	}

	return columns, nil
}

// SQLServerType renders a sys.types name with its length, precision or scale
// the way SQL Server DDL spells it, e.g. nvarchar(50), decimal(10,2),
// varbinary(max).
func SQLServerType(name string, maxLength, precision, scale int) string {
	switch strings.ToLower(name) {
	case "varchar", "char", "varbinary", "binary":
		if maxLength == -1 {
			return name + "(max)"
		}
		return fmt.Sprintf("%s(%d)", name, maxLength)
	case "nvarchar", "nchar":
		if maxLength == -1 {
			return name + "(max)"
		}
		return fmt.Sprintf("%s(%d)", name, maxLength/2)
	case "decimal", "numeric":
		return fmt.Sprintf("%s(%d,%d)", name, precision, scale)
	case "datetime2", "datetimeoffset", "time":
		return fmt.Sprintf("%s(%d)", name, scale)
	default:
		return name
	}
}

// Package introspect reads table and column metadata from a live database
// into the read models the exporter consumes.
//
// Basic usage:
//
//	src, err := introspect.Open("sqlserver", dsn, "dbo")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	tables, err := src.Describe(ctx, []string{"Orders", "Users"})
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

var (
	// ErrUnsupportedDriver is returned for drivers without a dialect.
	ErrUnsupportedDriver = errors.New("unsupported driver")
	// ErrTableNotFound is returned when a described table does not exist.
	ErrTableNotFound = errors.New("table not found")
)

// Driver names accepted by Open.
const (
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// Source enumerates and describes the tables of one database schema.
type Source interface {
	// Tables lists base table names in name order.
	Tables(ctx context.Context) ([]string, error)
	// Describe returns the named tables with their columns, in the order
	// given. An empty names list describes every table.
	Describe(ctx context.Context, names []string) ([]models.Table, error)
	// Close releases the connection pool.
	Close() error
}

type dialect interface {
	defaultSchema() string
	tables(ctx context.Context, db *sql.DB, schema string) ([]string, error)
	description(ctx context.Context, db *sql.DB, schema, table string) (string, error)
	columns(ctx context.Context, db *sql.DB, schema, table string) ([]models.Column, error)
}

// NormalizeDriver maps driver aliases to the names Open accepts.
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlserver", "mssql":
		return DriverSQLServer, nil
	case "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open connects to a database. An empty schema selects the driver default
// ("dbo" for SQL Server, "public" for PostgreSQL; ignored by SQLite).
func Open(driver, dsn, schema string) (Source, error) {
	name, err := NormalizeDriver(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return New(db, name, schema)
}

// New wraps an already open database handle. The source takes ownership of db.
func New(db *sql.DB, driver, schema string) (Source, error) {
	name, err := NormalizeDriver(driver)
	if err != nil {
		return nil, err
	}

	var d dialect
	switch name {
	case DriverSQLServer:
		d = sqlServer{}
	case DriverPostgres:
		d = postgres{}
	default:
		d = sqlite{}
	}
	if schema == "" {
		schema = d.defaultSchema()
	}

	return &source{db: db, schema: schema, d: d}, nil
}

type source struct {
	db     *sql.DB
	schema string
	d      dialect
}

func (s *source) Tables(ctx context.Context) ([]string, error) {
	names, err := s.d.tables(ctx, s.db, s.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables for schema %s: %w", s.schema, err)
	}
	return names, nil
}

func (s *source) Describe(ctx context.Context, names []string) ([]models.Table, error) {
	if len(names) == 0 {
		all, err := s.Tables(ctx)
		if err != nil {
			return nil, err
		}
		names = all
	}

	tables := make([]models.Table, 0, len(names))
	for _, name := range names {
		desc, err := s.d.description(ctx, s.db, s.schema, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get description for table %s.%s: %w", s.schema, name, err)
		}

		columns, err := s.d.columns(ctx, s.db, s.schema, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s.%s: %w", s.schema, name, err)
		}
		for i := range columns {
			columns[i].TableName = name
			if columns[i].Ordinal == 0 {
				columns[i].Ordinal = i + 1
			}
		}

		tables = append(tables, models.Table{
			Schema:      s.schema,
			Name:        name,
			Description: desc,
			Columns:     columns,
		})
	}

	return tables, nil
}

func (s *source) Close() error {
	return s.db.Close()
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryDescription runs a single-row description query. No row means the
// table does not exist.
func queryDescription(ctx context.Context, db *sql.DB, table, query string, args ...any) (string, error) {
	var desc sql.NullString
	err := db.QueryRowContext(ctx, query, args...).Scan(&desc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if err != nil {
		return "", err
	}
	return desc.String, nil
}

// reference renders a foreign key target as "table(column)".
func reference(table, column string) string {
	if column == "" {
		return table
	}
	return table + "(" + column + ")"
}

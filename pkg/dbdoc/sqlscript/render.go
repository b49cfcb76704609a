// Package sqlscript renders harvested descriptions as idempotent SQL Server
// extended-property statements and writes them to the two script files.
//
// Descriptions are interpolated as-is. Text containing single quotes yields
// invalid SQL unless the renderer is wrapped with EscapeQuotes.
package sqlscript

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

const (
	// PropertyName is the extended property holding descriptions.
	PropertyName = "MS_Description"
	// DefaultSchema is used when a renderer has no schema set.
	DefaultSchema = "dbo"
	// Separator joins statements within one block.
	Separator = ";"
)

// Renderer turns one harvested pair into one SQL statement.
type Renderer interface {
	TableStatement(p models.Pair) string
	ColumnStatement(p models.Pair) string
}

// MSSQL renders create-or-update statements against sys.extended_properties.
type MSSQL struct {
	// Schema qualifies every table reference. Defaults to "dbo".
	Schema string
}

func (r MSSQL) schema() string {
	if r.Schema == "" {
		return DefaultSchema
	}
	return r.Schema
}

// TableStatement implements Renderer.
func (r MSSQL) TableStatement(p models.Pair) string {
	schema := r.schema()
	param := fmt.Sprintf(`
@name = N'%s',
@value = '%s',
@level0type = N'SCHEMA',
@level0name = N'%s',
@level1type = N'TABLE',
@level1name = N'%s';`, PropertyName, p.Description, schema, p.Name)

	return fmt.Sprintf(`
IF EXISTS(
    SELECT * FROM sys.extended_properties
    WHERE major_id = OBJECT_ID('%s.%s')
    AND minor_id = 0
    AND class = 1
    AND name = '%s'
)
BEGIN
    EXEC sys.sp_updateextendedproperty %s
END
ELSE
BEGIN
    EXEC sys.sp_addextendedproperty %s
END`, schema, p.Name, PropertyName, param, param)
}

// ColumnStatement implements Renderer.
func (r MSSQL) ColumnStatement(p models.Pair) string {
	schema := r.schema()
	param := fmt.Sprintf(`'%s', '%s', 'user', '%s', 'table', '%s', 'column', '%s'`,
		PropertyName, p.Description, schema, p.TableName, p.Name)

	return fmt.Sprintf(`
IF EXISTS(SELECT * FROM ::fn_listextendedproperty ('%s', 'user', '%s', 'table', '%s', 'column', '%s'))
BEGIN
    exec sp_updateextendedproperty %s
END
ELSE
BEGIN
    exec sp_addextendedproperty %s
END`, PropertyName, schema, p.TableName, p.Name, param, param)
}

// EscapeQuotes wraps r so that single quotes in names and descriptions are
// doubled before rendering.
func EscapeQuotes(r Renderer) Renderer {
	return quoteEscaper{next: r}
}

type quoteEscaper struct {
	next Renderer
}

func (e quoteEscaper) TableStatement(p models.Pair) string {
	return e.next.TableStatement(escapePair(p))
}

func (e quoteEscaper) ColumnStatement(p models.Pair) string {
	return e.next.ColumnStatement(escapePair(p))
}

func escapePair(p models.Pair) models.Pair {
	p.TableName = strings.ReplaceAll(p.TableName, "'", "''")
	p.Name = strings.ReplaceAll(p.Name, "'", "''")
	p.Description = strings.ReplaceAll(p.Description, "'", "''")
	return p
}

// Block renders every pair of the given kind and joins the statements with
// Separator. Pairs of other kinds are ignored.
func Block(pairs []models.Pair, kind models.Kind, r Renderer) string {
	var statements []string
	for _, p := range pairs {
		if p.Kind != kind {
			continue
		}
		if kind == models.KindTable {
			statements = append(statements, r.TableStatement(p))
		} else {
			statements = append(statements, r.ColumnStatement(p))
		}
	}
	return strings.Join(statements, Separator)
}

package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidField is returned when a field name cannot be a column name or
// its value is not a scalar.
var ErrInvalidField = errors.New("invalid field")

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// tableSpec describes how one entity maps onto its table.
type tableSpec struct {
	Entity   string
	Table    string
	IDColumn string
	// Columns are selected and returned, in order. Write-only columns are left out.
	Columns []string
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (t tableSpec) selectList() string {
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

func (t tableSpec) selectByColumn(column string) string {
	return "SELECT " + t.selectList() +
		" FROM " + quoteIdent(t.Table) +
		" WHERE " + quoteIdent(column) + " = ?" +
		" ORDER BY " + quoteIdent(t.IDColumn)
}

// insertStatement builds a single INSERT ... RETURNING for the given columns.
func (t tableSpec) insertStatement(columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + quoteIdent(t.Table) + " DEFAULT VALUES RETURNING " + t.selectList()
	}
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = "?"
	}
	return "INSERT INTO " + quoteIdent(t.Table) +
		" (" + strings.Join(quoted, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" RETURNING " + t.selectList()
}

// updateStatement builds a partial UPDATE touching only the given columns.
// The id is the last placeholder.
func (t tableSpec) updateStatement(columns []string) string {
	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = quoteIdent(c) + " = ?"
	}
	return "UPDATE " + quoteIdent(t.Table) +
		" SET " + strings.Join(assignments, ", ") +
		" WHERE " + quoteIdent(t.IDColumn) + " = ?" +
		" RETURNING " + t.selectList()
}

func (t tableSpec) deleteStatement() string {
	return "DELETE FROM " + quoteIdent(t.Table) + " WHERE " + quoteIdent(t.IDColumn) + " = ?"
}

// writableColumns converts field names to columns, drops the id column and
// returns the columns sorted alongside their values.
func (t tableSpec) writableColumns(fields map[string]any) ([]string, []any, error) {
	converted := ConvertFields(fields)
	delete(converted, t.IDColumn)

	columns := make([]string, 0, len(converted))
	for c := range converted {
		if !columnPattern.MatchString(c) {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidField, c)
		}
		switch converted[c].(type) {
		case []any, map[string]any:
			return nil, nil, fmt.Errorf("%w: %q must be a string, number, boolean or null", ErrInvalidField, c)
		}
		columns = append(columns, c)
	}
	sort.Strings(columns)

	values := make([]any, len(columns))
	for i, c := range columns {
		values[i] = normalizeValue(converted[c])
	}
	return columns, values, nil
}

// normalizeValue narrows whole JSON numbers to int64 so they bind to integer columns.
func normalizeValue(v any) any {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return v
}

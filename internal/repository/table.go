package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

type Column struct {
	Name         string
	DatabaseType string
	Nullable     bool
}

// Table is a fully materialized result set.
type Table struct {
	Columns []Column
	Rows    [][]any
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, ignoring case, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Value returns the cell at row for the named column.
func (t *Table) Value(row int, column string) (any, bool) {
	i := t.Index(column)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[row][i], true
}

// Maps returns one column-name keyed map per row.
func (t *Table) Maps() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]any, len(t.Columns))
		for j, c := range t.Columns {
			m[c.Name] = row[j]
		}
		out[i] = m
	}
	return out
}

func readColumns(rows *sqlx.Rows) ([]Column, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]Column, len(types))
	for i, ct := range types {
		nullable, _ := ct.Nullable()
		columns[i] = Column{
			Name:         ct.Name(),
			DatabaseType: strings.ToUpper(ct.DatabaseTypeName()),
			Nullable:     nullable,
		}
	}
	return columns, nil
}

func readRow(rows *sqlx.Rows, columns []Column) ([]any, error) {
	values, err := rows.SliceScan()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok && isText(columns[i].DatabaseType) {
			values[i] = string(b)
		}
	}
	return values, nil
}

// isText reports whether []byte cells of databaseType hold text. Binary types and
// columns without a declared type keep their raw bytes.
func isText(databaseType string) bool {
	switch databaseType {
	case "", "BINARY", "VARBINARY", "IMAGE", "BYTEA", "BLOB", "UNIQUEIDENTIFIER":
		return false
	}
	return true
}

func readTable(rows *sqlx.Rows) (*Table, error) {
	columns, err := readColumns(rows)
	if err != nil {
		return nil, err
	}
	table := &Table{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		row, err := readRow(rows, columns)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

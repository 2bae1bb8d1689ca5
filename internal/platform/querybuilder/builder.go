package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and positional args, numbering $n
// placeholders as values are appended.
type statement struct {
	buf  strings.Builder
	args []any
	n    int
}

func (s *statement) write(text string) {
	s.buf.WriteString(text)
}

func (s *statement) bind(value any) {
	s.n++
	s.buf.WriteString("$" + strconv.Itoa(s.n))
	s.args = append(s.args, value)
}

// bindExpr copies expr into the statement, replacing each ? with the next
// numbered placeholder. Extra ? marks beyond the args are left as-is.
func (s *statement) bindExpr(expr string, values []any) {
	if len(values) == 0 {
		s.buf.WriteString(expr)
		return
	}

	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			s.bind(values[next])
			next++
			continue
		}
		s.buf.WriteByte(expr[i])
	}
}

func (s *statement) writeWhere(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

type Condition struct {
	render func(s *statement)
}

func Eq(column string, value any) Condition {
	return Condition{render: func(s *statement) {
		s.write(column)
		s.write(" = ")
		s.bind(value)
	}}
}

func IsNull(column string) Condition {
	return Condition{render: func(s *statement) {
		s.write(column)
		s.write(" IS NULL")
	}}
}

// Expr is the escape hatch for conditions the helpers cannot express, with
// ? marks for arguments.
func Expr(expr string, args ...any) Condition {
	return Condition{render: func(s *statement) {
		s.bindExpr(expr, args)
	}}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var s statement
	s.write("SELECT ")
	s.write(strings.Join(b.columns, ", "))
	s.write(" FROM ")
	s.write(b.table)
	s.writeWhere(b.where)
	if len(b.groupBy) > 0 {
		s.write(" GROUP BY ")
		s.write(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		s.write(" ORDER BY ")
		s.write(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.write(" LIMIT ")
		s.write(strconv.Itoa(b.limit))
	}

	return s.buf.String(), s.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL such as an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s statement
	s.write("INSERT INTO ")
	s.write(b.table)
	s.write(" (")
	s.write(strings.Join(b.columns, ", "))
	s.write(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			s.write(", ")
		}
		s.write("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				s.write(", ")
			}
			s.bind(value)
		}
		s.write(")")
	}

	if b.suffix != "" {
		s.write(" ")
		s.write(b.suffix)
	}

	return s.buf.String(), s.args, nil
}

type setClause struct {
	column string
	value  any
	expr   string
	args   []any
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression instead of a bound value, e.g.
// SetExpr("version", "version + 1").
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: expr, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var s statement
	s.write("UPDATE ")
	s.write(b.table)
	s.write(" SET ")

	for i, set := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(set.column)
		s.write(" = ")
		if set.isExpr {
			s.bindExpr(set.expr, set.args)
		} else {
			s.bind(set.value)
		}
	}

	s.writeWhere(b.where)

	return s.buf.String(), s.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var s statement
	s.write("DELETE FROM ")
	s.write(b.table)
	s.writeWhere(b.where)

	return s.buf.String(), s.args, nil
}

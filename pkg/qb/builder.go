package qb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// M is shorthand for predicate and assignment maps.
type M = map[string]any

// Executor runs built statements. Implemented by *db.Session and *db.Manager.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// operation kinds.
type operation int

const (
	opNone operation = iota
	opSelect
	opInsert
	opUpdate
	opDelete
)

func (o operation) String() string {
	switch o {
	case opSelect:
		return "select"
	case opInsert:
		return "insert"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	default:
		return "none"
	}
}

var allowedJoinTypes = map[string]bool{
	"INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
}

// pair is an ordered column/value binding.
type pair struct {
	column string
	value  any
}

// inClause is a list-membership predicate.
type inClause struct {
	column string
	values []any
}

// joinClause projects extra columns from a joined table.
type joinClause struct {
	kind    string
	table   string
	on      string
	columns []string
}

// Builder accumulates one statement through fluent calls and renders it with
// Build, or runs it via Query/Exec. A builder is consumed by execution: its
// state resets afterwards, so a second execution without re-chaining fails
// with ErrNoOperation instead of silently replaying stale clauses.
//
// Builders are not safe for concurrent use; build one per statement.
type Builder struct {
	dialect Dialect
	table   string

	op         operation
	columns    []string
	insertCols []string
	insertRows [][]any
	updates    []pair
	eq         []pair
	in         []inClause
	like       []pair
	joins      []joinClause
	orderCol   string
	orderDir   string
	limit      int
	offset     int

	err error
}

// Option configures a Builder.
type Option func(*Builder)

// WithDialect overrides the placeholder dialect. Defaults to Postgres.
func WithDialect(d Dialect) Option {
	return func(b *Builder) {
		if d != nil {
			b.dialect = d
		}
	}
}

// New creates a builder for the given table.
func New(table string, opts ...Option) *Builder {
	b := &Builder{
		dialect: PostgresDialect{},
		table:   table,
		limit:   -1,
		offset:  -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if table == "" {
		b.fail(ErrNoTable)
	}
	return b
}

// fail records the first chaining error; later calls keep it.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Select marks the statement as a read. Columns are qualified with the table
// name; with no columns the projection defaults to table.*.
func (b *Builder) Select(columns ...string) *Builder {
	b.op = opSelect
	for _, col := range columns {
		b.columns = append(b.columns, b.qualify(col))
	}
	return b
}

// Insert stages one or more rows. All rows must share the same key set;
// columns are ordered alphabetically so placeholder order is deterministic.
func (b *Builder) Insert(rows ...M) *Builder {
	b.op = opInsert
	if len(rows) == 0 {
		b.fail(ErrNoInsertRows)
		return b
	}

	cols := sortedKeys(rows[0])
	for _, row := range rows {
		if len(row) != len(cols) {
			b.fail(fmt.Errorf("%w: got %d columns, want %d", ErrHeterogeneousRows, len(row), len(cols)))
			return b
		}
		vals := make([]any, 0, len(cols))
		for _, col := range cols {
			v, ok := row[col]
			if !ok {
				b.fail(fmt.Errorf("%w: missing column %q", ErrHeterogeneousRows, col))
				return b
			}
			vals = append(vals, v)
		}
		b.insertRows = append(b.insertRows, vals)
	}
	b.insertCols = cols
	return b
}

// Update stages column assignments. The statement must carry at least one
// predicate by execution time or it fails with DangerousQueryError.
func (b *Builder) Update(data M) *Builder {
	b.op = opUpdate
	if len(data) == 0 {
		b.fail(ErrNoUpdateValues)
		return b
	}
	for _, col := range sortedKeys(data) {
		b.updates = append(b.updates, pair{column: col, value: data[col]})
	}
	return b
}

// Delete marks the statement as a delete. Same predicate requirement as
// Update.
func (b *Builder) Delete() *Builder {
	b.op = opDelete
	return b
}

// Where merges equality predicates. A later call with an already-bound
// column overwrites that condition.
func (b *Builder) Where(conds M) *Builder {
	for _, col := range sortedKeys(conds) {
		replaced := false
		for i := range b.eq {
			if b.eq[i].column == col {
				b.eq[i].value = conds[col]
				replaced = true
				break
			}
		}
		if !replaced {
			b.eq = append(b.eq, pair{column: col, value: conds[col]})
		}
	}
	return b
}

// WhereIn appends a list-membership predicate, ANDed with the others.
func (b *Builder) WhereIn(column string, values ...any) *Builder {
	b.in = append(b.in, inClause{column: column, values: values})
	return b
}

// Search appends LIKE predicates, ANDed with the other groups. Callers embed
// wildcard characters in the values themselves.
func (b *Builder) Search(conds M) *Builder {
	for _, col := range sortedKeys(conds) {
		b.like = append(b.like, pair{column: col, value: conds[col]})
	}
	return b
}

// Join appends a join clause and projects extra columns from the joined
// table. kind is one of INNER, LEFT, RIGHT, FULL.
func (b *Builder) Join(kind, table, on string, columns ...string) *Builder {
	kind = strings.ToUpper(kind)
	if !allowedJoinTypes[kind] {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidJoinType, kind))
		return b
	}
	qualified := make([]string, 0, len(columns))
	for _, col := range columns {
		if strings.Contains(col, ".") {
			qualified = append(qualified, col)
		} else {
			qualified = append(qualified, table+"."+col)
		}
	}
	b.joins = append(b.joins, joinClause{kind: kind, table: table, on: on, columns: qualified})
	return b
}

// OrderBy sets the ordering clause. dir is ASC or DESC.
func (b *Builder) OrderBy(column, dir string) *Builder {
	dir = strings.ToUpper(dir)
	if dir != "ASC" && dir != "DESC" {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidSortDir, dir))
		return b
	}
	b.orderCol = b.qualify(column)
	b.orderDir = dir
	return b
}

// Limit caps the number of returned rows. Negative values are ignored.
func (b *Builder) Limit(n int) *Builder {
	if n >= 0 {
		b.limit = n
	}
	return b
}

// Offset skips the first n rows. Negative values are ignored.
func (b *Builder) Offset(n int) *Builder {
	if n >= 0 {
		b.offset = n
	}
	return b
}

// Build renders the SQL statement and its bound arguments. Arguments are
// appended in the exact order their placeholders appear in the statement.
// Build does not reset the builder; execution does.
func (b *Builder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	switch b.op {
	case opSelect:
		return b.buildSelect()
	case opInsert:
		return b.buildInsert()
	case opUpdate:
		return b.buildUpdate()
	case opDelete:
		return b.buildDelete()
	default:
		return "", nil, ErrNoOperation
	}
}

// Query builds and runs a select, returning the rows. The builder resets
// whether or not the statement succeeds.
func (b *Builder) Query(ctx context.Context, ex Executor) (pgx.Rows, error) {
	defer b.reset()

	if b.err == nil && b.op != opNone && b.op != opSelect {
		return nil, fmt.Errorf("%w: have %s", ErrNotSelect, b.op)
	}
	sql, args, err := b.Build()
	if err != nil {
		return nil, err
	}
	return ex.Query(ctx, sql, args...)
}

// Exec builds and runs a write statement. The builder resets whether or not
// the statement succeeds.
func (b *Builder) Exec(ctx context.Context, ex Executor) (pgconn.CommandTag, error) {
	defer b.reset()

	if b.err == nil && b.op == opSelect {
		return pgconn.CommandTag{}, ErrSelectNotExec
	}
	sql, args, err := b.Build()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return ex.Exec(ctx, sql, args...)
}

// reset returns the builder to its default empty state so prior clauses
// cannot leak into the next statement.
func (b *Builder) reset() {
	table, dialect := b.table, b.dialect
	*b = Builder{dialect: dialect, table: table, limit: -1, offset: -1}
}

func (b *Builder) buildSelect() (string, []any, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	cols := b.columns
	if len(cols) == 0 {
		cols = []string{b.table + ".*"}
	}
	for _, j := range b.joins {
		cols = append(cols, j.columns...)
	}
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	for _, j := range b.joins {
		fmt.Fprintf(&sb, " %s JOIN %s ON %s", j.kind, j.table, j.on)
	}

	b.writeWhere(&sb, &args)

	if b.orderCol != "" {
		fmt.Fprintf(&sb, " ORDER BY %s %s", b.orderCol, b.orderDir)
	}
	if b.limit >= 0 {
		args = append(args, b.limit)
		fmt.Fprintf(&sb, " LIMIT %s", b.dialect.Placeholder(len(args)))
	}
	if b.offset >= 0 {
		args = append(args, b.offset)
		fmt.Fprintf(&sb, " OFFSET %s", b.dialect.Placeholder(len(args)))
	}

	sb.WriteString(";")
	return sb.String(), args, nil
}

func (b *Builder) buildInsert() (string, []any, error) {
	if len(b.insertRows) == 0 {
		return "", nil, ErrNoInsertRows
	}

	var sb strings.Builder
	args := make([]any, 0, len(b.insertRows)*len(b.insertCols))

	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", b.table, strings.Join(b.insertCols, ", "))

	// Rows are serialized as one multi-row VALUES list. Every value is bound
	// as a parameter; nothing is interpolated into the statement text.
	tuples := make([]string, 0, len(b.insertRows))
	for _, row := range b.insertRows {
		marks := make([]string, 0, len(row))
		for _, v := range row {
			args = append(args, v)
			marks = append(marks, b.dialect.Placeholder(len(args)))
		}
		tuples = append(tuples, "("+strings.Join(marks, ", ")+")")
	}
	sb.WriteString(strings.Join(tuples, ", "))

	sb.WriteString(";")
	return sb.String(), args, nil
}

func (b *Builder) buildUpdate() (string, []any, error) {
	if len(b.updates) == 0 {
		return "", nil, ErrNoUpdateValues
	}
	if !b.hasPredicate() {
		return "", nil, &DangerousQueryError{Op: "update", Table: b.table}
	}

	var sb strings.Builder
	var args []any

	fmt.Fprintf(&sb, "UPDATE %s SET ", b.table)
	assigns := make([]string, 0, len(b.updates))
	for _, u := range b.updates {
		args = append(args, u.value)
		assigns = append(assigns, fmt.Sprintf("%s = %s", u.column, b.dialect.Placeholder(len(args))))
	}
	sb.WriteString(strings.Join(assigns, ", "))

	b.writeWhere(&sb, &args)

	sb.WriteString(";")
	return sb.String(), args, nil
}

func (b *Builder) buildDelete() (string, []any, error) {
	if !b.hasPredicate() {
		return "", nil, &DangerousQueryError{Op: "delete", Table: b.table}
	}

	var sb strings.Builder
	var args []any

	fmt.Fprintf(&sb, "DELETE FROM %s", b.table)
	b.writeWhere(&sb, &args)

	sb.WriteString(";")
	return sb.String(), args, nil
}

func (b *Builder) hasPredicate() bool {
	return len(b.eq) > 0 || len(b.in) > 0 || len(b.like) > 0
}

// writeWhere assembles the predicate groups: equality, IN, LIKE, in that
// order, AND-joined. Arguments are appended in clause order so the parameter
// list always matches placeholder positions.
func (b *Builder) writeWhere(sb *strings.Builder, args *[]any) {
	var parts []string

	for _, p := range b.eq {
		*args = append(*args, p.value)
		parts = append(parts, fmt.Sprintf("%s = %s", b.qualify(p.column), b.dialect.Placeholder(len(*args))))
	}

	for _, c := range b.in {
		marks := make([]string, 0, len(c.values))
		for _, v := range c.values {
			*args = append(*args, v)
			marks = append(marks, b.dialect.Placeholder(len(*args)))
		}
		parts = append(parts, fmt.Sprintf("%s IN (%s)", b.qualify(c.column), strings.Join(marks, ", ")))
	}

	for _, p := range b.like {
		*args = append(*args, p.value)
		parts = append(parts, fmt.Sprintf("%s LIKE %s", b.qualify(p.column), b.dialect.Placeholder(len(*args))))
	}

	if len(parts) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(parts, " AND "))
}

// qualify prefixes bare column names with the base table. Columns already
// carrying a table prefix pass through.
func (b *Builder) qualify(col string) string {
	if col == "*" {
		return b.table + ".*"
	}
	if strings.Contains(col, ".") {
		return col
	}
	return b.table + "." + col
}

// sortedKeys returns map keys in alphabetical order. Map iteration order is
// random in Go; sorting keeps generated SQL and parameter order stable.
func sortedKeys(m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package qb

import "fmt"

// Dialect supplies SQL flavor specifics. Only placeholder syntax differs
// between the supported engines.
type Dialect interface {
	// Placeholder returns the positional parameter marker for index (1-based).
	Placeholder(index int) string
}

// PostgresDialect renders $1, $2, ... placeholders. This is the default, as
// execution goes through pgx.
type PostgresDialect struct{}

func (PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// MySQLDialect renders ? placeholders.
type MySQLDialect struct{}

func (MySQLDialect) Placeholder(int) string {
	return "?"
}

// Package qb provides a fluent SQL statement builder with parameter binding.
//
// A Builder is created per table and accumulates exactly one statement
// through chained calls, then either renders it with Build or runs it
// through an Executor with Query or Exec:
//
//	rows, err := qb.New("users").
//		Select("id", "email").
//		Where(qb.M{"status": "active"}).
//		OrderBy("created_at", "DESC").
//		Limit(20).
//		Query(ctx, session)
//
// Every value travels as a bound parameter; the builder never interpolates
// values into statement text. Placeholder syntax comes from the Dialect
// (Postgres $n by default).
//
// Updates and deletes must carry at least one predicate. A predicate-less
// write fails with *DangerousQueryError before it reaches the database.
//
// Execution resets the builder, so reusing one without chaining a new
// statement fails with ErrNoOperation rather than replaying stale clauses.
package qb

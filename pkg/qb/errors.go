package qb

import (
	"errors"
	"fmt"
)

var (
	ErrNoTable = errors.New("qb: table name required")

	// ErrNoOperation is returned when Build or execution runs on a builder
	// with no pending statement, including re-execution after the builder
	// reset itself.
	ErrNoOperation = errors.New("qb: no operation chained")

	ErrNotSelect         = errors.New("qb: Query requires a select statement")
	ErrSelectNotExec     = errors.New("qb: Exec cannot run a select statement")
	ErrNoInsertRows      = errors.New("qb: insert requires at least one row")
	ErrHeterogeneousRows = errors.New("qb: insert rows must share the same key set")
	ErrNoUpdateValues    = errors.New("qb: update requires at least one assignment")
	ErrInvalidJoinType   = errors.New("qb: invalid join type")
	ErrInvalidSortDir    = errors.New("qb: invalid sort direction")
)

// DangerousQueryError rejects an update or delete that carries no predicate
// and would otherwise touch every row. Raised before the statement reaches
// the store.
type DangerousQueryError struct {
	Op    string
	Table string
}

func (e *DangerousQueryError) Error() string {
	return fmt.Sprintf("qb: refusing %s on %q without a predicate", e.Op, e.Table)
}

// IsDangerousQuery reports whether err is a DangerousQueryError.
func IsDangerousQuery(err error) bool {
	var de *DangerousQueryError
	return errors.As(err, &de)
}

package logical

import "github.com/siftdb/sift/internal/sqlparser"

// Build converts a parsed statement into its initial logical plan.
// Construction is bottom-up: Scan, then Filter when the statement has
// one, always Project, then Limit when the statement has one. The
// resulting shape is always Limit?(Project(Filter?(Scan))).
//
// Build is total: every well-formed statement yields a valid plan.
func Build(stmt sqlparser.Statement) Node {
	var plan Node = &Scan{Table: stmt.Table}

	if len(stmt.Filters) > 0 {
		plan = &Filter{Input: plan, Condition: stmt.Filters[0]}
	}

	plan = &Project{Input: plan, Fields: stmt.Fields}

	if stmt.Limit != nil {
		plan = &Limit{Input: plan, Count: *stmt.Limit}
	}

	return plan
}

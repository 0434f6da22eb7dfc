// Package executor evaluates a physical plan over an in-memory catalog.
// Evaluation is a strict post-order walk: each node obtains its child's
// output rows, then applies its own operator. Type mismatches in the
// data degrade: a condition that cannot be evaluated is false and a
// projection that cannot be computed is null, rather than failing the
// query.
package executor

import (
	"github.com/siftdb/sift/internal/physical"
	"github.com/siftdb/sift/internal/row"
)

// Execute runs a physical plan against a catalog and returns the
// ordered output rows. The catalog is only read; scan output never
// aliases the catalog's backing slices.
func Execute(plan physical.Node, catalog row.Catalog) []row.Record {
	switch n := plan.(type) {
	case *physical.SequentialScan:
		src := catalog[n.Table]
		out := make([]row.Record, len(src))
		copy(out, src)
		return out

	case *physical.FilterIterative:
		input := Execute(n.Input, catalog)
		out := make([]row.Record, 0, len(input))
		for _, rec := range input {
			if evalCondition(rec, n.Condition) {
				out = append(out, rec)
			}
		}
		return out

	case *physical.ProjectEvaluate:
		input := Execute(n.Input, catalog)
		out := make([]row.Record, len(input))
		for i, rec := range input {
			out[i] = evalProjection(rec, n.Fields)
		}
		return out

	case *physical.LimitRows:
		input := Execute(n.Input, catalog)
		if n.Count < len(input) {
			return input[:n.Count]
		}
		return input

	default:
		return nil
	}
}

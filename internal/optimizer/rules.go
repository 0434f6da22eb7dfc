package optimizer

import (
	"log/slog"

	"github.com/siftdb/sift/internal/logical"
	"github.com/siftdb/sift/internal/sqlparser"
)

// limitFilterThreshold is the row-count ceiling under which the
// Limit-Filter Reordering rule considers the pattern worth recording.
const limitFilterThreshold = 1000

// deadCodeFieldCeiling is the bare-field count above which dead-code
// elimination flags a projection as a pruning candidate.
const deadCodeFieldCeiling = 10

// limitPushdown rewrites Limit(Project(X)) to Project(Limit(X)) so
// fewer rows pass through projection.
func limitPushdown(plan logical.Node) (logical.Node, bool) {
	limit, ok := plan.(*logical.Limit)
	if !ok {
		return plan, false
	}
	project, ok := limit.Input.(*logical.Project)
	if !ok {
		return plan, false
	}

	return &logical.Project{
		Fields: project.Fields,
		Input: &logical.Limit{
			Count: limit.Count,
			Input: project.Input,
		},
	}, true
}

// selectionPushdown rewrites Project(Filter(X)) to Filter(Project(X)),
// but only when the filter's column survives the projection. Pushing
// the filter above a projection that drops its column would make the
// condition unevaluable.
func selectionPushdown(plan logical.Node) (logical.Node, bool) {
	project, ok := plan.(*logical.Project)
	if !ok {
		return plan, false
	}
	filter, ok := project.Input.(*logical.Filter)
	if !ok {
		return plan, false
	}
	if !fieldsContainColumn(project.Fields, filter.Condition.Column) {
		return plan, false
	}

	return &logical.Filter{
		Condition: filter.Condition,
		Input: &logical.Project{
			Fields: project.Fields,
			Input:  filter.Input,
		},
	}, true
}

// projectionPruning removes duplicate projection fields, keeping the
// first occurrence of each. Two bare fields with the same name, or two
// arithmetic fields with identical operator, column and literal, are
// duplicates.
func projectionPruning(plan logical.Node) (logical.Node, bool) {
	project, ok := plan.(*logical.Project)
	if !ok {
		return plan, false
	}

	seen := make(map[sqlparser.Field]bool, len(project.Fields))
	pruned := make([]sqlparser.Field, 0, len(project.Fields))
	for _, f := range project.Fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		pruned = append(pruned, f)
	}

	if len(pruned) == len(project.Fields) {
		return plan, false
	}

	return &logical.Project{
		Fields: pruned,
		Input:  project.Input,
	}, true
}

// limitFilterReordering matches Limit(Filter(X)) with a limit under
// the threshold and rebuilds the same shape as a new tree. The rewrite
// is structurally a no-op; it still reports applied so the rule log
// records that the pattern was seen. The driver's iteration cap keeps
// the repeated applications bounded.
func limitFilterReordering(plan logical.Node) (logical.Node, bool) {
	limit, ok := plan.(*logical.Limit)
	if !ok {
		return plan, false
	}
	filter, ok := limit.Input.(*logical.Filter)
	if !ok {
		return plan, false
	}
	if limit.Count >= limitFilterThreshold {
		return plan, false
	}

	return &logical.Limit{
		Count: limit.Count,
		Input: &logical.Filter{
			Condition: filter.Condition,
			Input:     filter.Input,
		},
	}, true
}

// arithmeticExpressionCheck walks the projection fields looking at
// arithmetic expressions. It is a validation pass: arithmetic fields
// always carry a numeric literal by construction, so it never rewrites.
func arithmeticExpressionCheck(plan logical.Node) (logical.Node, bool) {
	project, ok := plan.(*logical.Project)
	if !ok {
		return plan, false
	}

	for _, f := range project.Fields {
		if arith, ok := f.(sqlparser.Arith); ok {
			slog.Debug("arithmetic projection field checked",
				"column", arith.Column,
				"op", arith.Op)
		}
	}

	return plan, false
}

// deadCodeElimination flags projections carrying an unusually wide
// bare-field list. It never rewrites the plan; wide projections are
// only reported.
func deadCodeElimination(plan logical.Node) (logical.Node, bool) {
	project, ok := plan.(*logical.Project)
	if !ok {
		return plan, false
	}

	bare := 0
	for _, f := range project.Fields {
		if _, ok := f.(sqlparser.Column); ok {
			bare++
		}
	}
	if bare > deadCodeFieldCeiling {
		slog.Debug("projection is a pruning candidate", "bare_fields", bare)
	}

	return plan, false
}

// fieldsContainColumn reports whether the projection includes the
// column, either as a bare field or as the column operand of an
// arithmetic field.
func fieldsContainColumn(fields []sqlparser.Field, column string) bool {
	for _, f := range fields {
		switch field := f.(type) {
		case sqlparser.Column:
			if field.Name == column {
				return true
			}
		case sqlparser.Arith:
			if field.Column == column {
				return true
			}
		}
	}
	return false
}

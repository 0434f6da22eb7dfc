// Package optimizer rewrites logical plans with an ordered list of
// pattern-matching rules driven to a fixed point. Each rule is a pure
// function over the plan root (and for some rules its direct child):
// it either returns the plan unchanged or a freshly built replacement
// subtree. Rules never mutate the tree they were given.
package optimizer

import "github.com/siftdb/sift/internal/logical"

// maxIterations bounds the driver loop. No defined rule pair can
// rewrite back and forth, so the cap is a safety net rather than a
// correctness dependency; it also bounds rules that report applied
// without changing the tree shape.
const maxIterations = 5

// Rule is one rewrite rule: a name for the applied-rule log and a pure
// apply function. Apply reports true only when it returned a new plan.
type Rule struct {
	Name  string
	Apply func(logical.Node) (logical.Node, bool)
}

// Result carries the rewritten plan and the names of the rules that
// fired, in application order. A rule firing more than once appears
// more than once.
type Result struct {
	Plan    logical.Node
	Applied []string
}

// Rules returns the rule catalog in fixed priority order.
func Rules() []Rule {
	return []Rule{
		{Name: "Limit Pushdown", Apply: limitPushdown},
		{Name: "Selection Pushdown", Apply: selectionPushdown},
		{Name: "Projection Pruning", Apply: projectionPruning},
		{Name: "Limit-Filter Reordering", Apply: limitFilterReordering},
		{Name: "Arithmetic Expression Check", Apply: arithmeticExpressionCheck},
		{Name: "Dead-Code Elimination", Apply: deadCodeElimination},
	}
}

// Optimize drives the rule list to a fixed point. Whenever a rule
// applies, the scan restarts from the first rule, so a later rule can
// re-enable an earlier, higher-priority one; a full pass with no
// applications stops early. Optimize never fails; the worst case is
// the input plan back with an empty rule list.
func Optimize(plan logical.Node) Result {
	rules := Rules()
	var applied []string

	for iter := 0; iter < maxIterations; iter++ {
		fired := false
		for _, rule := range rules {
			next, ok := rule.Apply(plan)
			if ok {
				plan = next
				applied = append(applied, rule.Name)
				fired = true
				break // restart from the first rule
			}
		}
		if !fired {
			break
		}
	}

	return Result{Plan: plan, Applied: applied}
}

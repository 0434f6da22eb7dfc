package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftdb/sift/internal/logical"
	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

func intPtr(n int) *int { return &n }

func buildPlan(t *testing.T, query string) logical.Node {
	t.Helper()
	stmt, err := sqlparser.Parse(query)
	require.NoError(t, err)
	return logical.Build(stmt)
}

func TestOptimize_LimitPushdown(t *testing.T) {
	plan := buildPlan(t, "SELECT id, age+10 FROM t1 WHERE id<6 LIMIT 3")

	result := Optimize(plan)

	assert.Equal(t, []string{"Limit Pushdown"}, result.Applied)

	// New shape: Project(Limit(Filter(Scan))).
	project, ok := result.Plan.(*logical.Project)
	require.True(t, ok)
	limit, ok := project.Input.(*logical.Limit)
	require.True(t, ok)
	assert.Equal(t, 3, limit.Count)
	filter, ok := limit.Input.(*logical.Filter)
	require.True(t, ok)
	_, ok = filter.Input.(*logical.Scan)
	require.True(t, ok)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	plan := buildPlan(t, "SELECT id FROM t1 LIMIT 3")
	before := plan.FormatTree(0)

	Optimize(plan)

	assert.Equal(t, before, plan.FormatTree(0), "input tree must be left intact")
}

func TestOptimize_SelectionPushdown(t *testing.T) {
	plan := buildPlan(t, "SELECT city FROM t1 WHERE city='Gander'")

	result := Optimize(plan)

	assert.Equal(t, []string{"Selection Pushdown"}, result.Applied)

	filter, ok := result.Plan.(*logical.Filter)
	require.True(t, ok, "filter should now be the root")
	assert.Equal(t, "city", filter.Condition.Column)
	project, ok := filter.Input.(*logical.Project)
	require.True(t, ok)
	_, ok = project.Input.(*logical.Scan)
	require.True(t, ok)
}

func TestOptimize_SelectionPushdownMatchesArithmeticColumn(t *testing.T) {
	plan := buildPlan(t, "SELECT age+10 FROM t1 WHERE age>30")

	result := Optimize(plan)

	assert.Contains(t, result.Applied, "Selection Pushdown")
}

func TestOptimize_SelectionPushdownSkippedWhenColumnNotProjected(t *testing.T) {
	plan := buildPlan(t, "SELECT city FROM t1 WHERE id<6")

	result := Optimize(plan)

	assert.Empty(t, result.Applied,
		"pushing the filter above a projection that drops its column must be skipped")
	project, ok := result.Plan.(*logical.Project)
	require.True(t, ok)
	_, ok = project.Input.(*logical.Filter)
	require.True(t, ok)
}

func TestOptimize_ProjectionPruning(t *testing.T) {
	plan := buildPlan(t, "SELECT a, a FROM t1")

	result := Optimize(plan)

	assert.Equal(t, []string{"Projection Pruning"}, result.Applied)

	project, ok := result.Plan.(*logical.Project)
	require.True(t, ok)
	assert.Equal(t, []sqlparser.Field{sqlparser.Column{Name: "a"}}, project.Fields)
}

func TestProjectionPruning_DuplicateArithmeticFields(t *testing.T) {
	fields := []sqlparser.Field{
		sqlparser.Arith{Op: "+", Column: "age", Literal: row.Int(10)},
		sqlparser.Arith{Op: "+", Column: "age", Literal: row.Int(10)},
		sqlparser.Arith{Op: "+", Column: "age", Literal: row.Int(20)},
	}
	plan := &logical.Project{Fields: fields, Input: &logical.Scan{Table: "t1"}}

	next, applied := projectionPruning(plan)

	require.True(t, applied)
	project := next.(*logical.Project)
	require.Len(t, project.Fields, 2, "only the identical pair collapses")
	assert.Equal(t, fields[0], project.Fields[0])
	assert.Equal(t, fields[2], project.Fields[1])
}

func TestProjectionPruning_PreservesFirstOccurrenceOrder(t *testing.T) {
	fields := []sqlparser.Field{
		sqlparser.Column{Name: "b"},
		sqlparser.Column{Name: "a"},
		sqlparser.Column{Name: "b"},
		sqlparser.Column{Name: "c"},
	}
	plan := &logical.Project{Fields: fields, Input: &logical.Scan{Table: "t1"}}

	next, applied := projectionPruning(plan)

	require.True(t, applied)
	assert.Equal(t, []sqlparser.Field{
		sqlparser.Column{Name: "b"},
		sqlparser.Column{Name: "a"},
		sqlparser.Column{Name: "c"},
	}, next.(*logical.Project).Fields)
}

func TestOptimize_LimitFilterReorderingIsBoundedByIterationCap(t *testing.T) {
	// The builder never produces Limit(Filter(X)) at the root, but the
	// rule must still behave when handed one: it reports applied on
	// every pass and the iteration cap stops the loop.
	plan := &logical.Limit{
		Count: 5,
		Input: &logical.Filter{
			Condition: sqlparser.Condition{Op: "<", Column: "id", Literal: row.Int(6)},
			Input:     &logical.Scan{Table: "t1"},
		},
	}
	before := plan.FormatTree(0)

	result := Optimize(plan)

	assert.Equal(t, []string{
		"Limit-Filter Reordering",
		"Limit-Filter Reordering",
		"Limit-Filter Reordering",
		"Limit-Filter Reordering",
		"Limit-Filter Reordering",
	}, result.Applied)
	assert.Equal(t, before, result.Plan.FormatTree(0), "rewrite is structurally a no-op")
}

func TestLimitFilterReordering_ThresholdNotMet(t *testing.T) {
	plan := &logical.Limit{
		Count: 1000,
		Input: &logical.Filter{
			Condition: sqlparser.Condition{Op: "<", Column: "id", Literal: row.Int(6)},
			Input:     &logical.Scan{Table: "t1"},
		},
	}

	_, applied := limitFilterReordering(plan)
	assert.False(t, applied)
}

func TestOptimize_NoOpRulesNeverReport(t *testing.T) {
	// A wide bare-field projection triggers the dead-code flag and the
	// arithmetic check walks the fields, but neither ever rewrites.
	fields := make([]sqlparser.Field, 0, 12)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		fields = append(fields, sqlparser.Column{Name: name})
	}
	fields = append(fields, sqlparser.Arith{Op: "*", Column: "a", Literal: row.Int(2)})
	plan := &logical.Project{Fields: fields, Input: &logical.Scan{Table: "t1"}}

	result := Optimize(plan)

	assert.Empty(t, result.Applied)
	assert.Same(t, plan, result.Plan)
}

func TestOptimize_Idempotent(t *testing.T) {
	queries := []string{
		"SELECT id, age+10 FROM t1 WHERE id<6 LIMIT 3",
		"SELECT city FROM t1 WHERE city='Gander'",
		"SELECT a, a FROM t1",
		"SELECT a FROM t1",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first := Optimize(buildPlan(t, q))
			second := Optimize(first.Plan)
			assert.Empty(t, second.Applied, "optimize must reach a fixed point in one call")
		})
	}
}

func TestOptimize_PlanWithoutPatterns(t *testing.T) {
	plan := buildPlan(t, "SELECT a FROM t1")

	result := Optimize(plan)

	assert.Empty(t, result.Applied)
	assert.Same(t, plan, result.Plan)
}

// Package logical defines the logical plan: an operator tree expressing
// what relational transformation to perform, independent of execution
// strategy. Trees are strict: every node owns its single child and is
// never shared; the optimizer rewrites by building new nodes, never by
// mutating in place.
package logical

import (
	"fmt"
	"strings"

	"github.com/siftdb/sift/internal/sqlparser"
)

// Node is a sealed interface over the four logical operators.
// Only *Scan, *Filter, *Project, and *Limit implement it.
type Node interface {
	logicalNode() // Sealed - only types in this package implement it

	// FormatTree renders the subtree as an indented outline, one line
	// per node, starting at the given depth. Display only; nothing
	// reparses it.
	FormatTree(depth int) string
}

// Scan reads every row of a table. Always the leaf of a plan.
type Scan struct {
	Table string
}

func (*Scan) logicalNode() {}

// FormatTree implements Node.
func (s *Scan) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("[Scan] table=%s", s.Table)
}

// Filter keeps the input rows satisfying a single condition.
type Filter struct {
	Input     Node
	Condition sqlparser.Condition
}

func (*Filter) logicalNode() {}

// FormatTree implements Node.
func (f *Filter) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("[Filter] condition=%s", f.Condition) +
		"\n" + f.Input.FormatTree(depth+1)
}

// Project narrows each input row to an ordered list of fields,
// evaluating arithmetic fields along the way.
type Project struct {
	Input  Node
	Fields []sqlparser.Field
}

func (*Project) logicalNode() {}

// FormatTree implements Node.
func (p *Project) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("[Project] fields=[%s]", formatFields(p.Fields)) +
		"\n" + p.Input.FormatTree(depth+1)
}

// Limit truncates the input to its first Count rows.
type Limit struct {
	Input Node
	Count int
}

func (*Limit) logicalNode() {}

// FormatTree implements Node.
func (l *Limit) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("[Limit] count=%d", l.Count) +
		"\n" + l.Input.FormatTree(depth+1)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func formatFields(fields []sqlparser.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%v", f)
	}
	return strings.Join(parts, ", ")
}

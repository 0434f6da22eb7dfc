// Package physical defines the physical plan: an operator tree
// expressing how to execute, one-to-one with the logical plan. The
// only transformation at this stage is operator renaming; the split
// exists so future lowerings can pick between execution strategies
// without touching the logical algebra.
package physical

import (
	"fmt"
	"strings"

	"github.com/siftdb/sift/internal/sqlparser"
)

// Node is a sealed interface over the four physical operators.
// Only *SequentialScan, *FilterIterative, *ProjectEvaluate, and
// *LimitRows implement it.
type Node interface {
	physicalNode() // Sealed - only types in this package implement it

	// FormatTree renders the subtree as an indented outline, one line
	// per node, starting at the given depth. Display only.
	FormatTree(depth int) string
}

// SequentialScan reads the named table's rows from the catalog front
// to back.
type SequentialScan struct {
	Table string
}

func (*SequentialScan) physicalNode() {}

// FormatTree implements Node.
func (s *SequentialScan) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("-> SequentialScan(table=%s)", s.Table)
}

// FilterIterative evaluates the condition against each input row in
// turn.
type FilterIterative struct {
	Input     Node
	Condition sqlparser.Condition
}

func (*FilterIterative) physicalNode() {}

// FormatTree implements Node.
func (f *FilterIterative) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("-> FilterIterative(condition=%s)", f.Condition) +
		"\n" + f.Input.FormatTree(depth+1)
}

// ProjectEvaluate builds a fresh output record per input row,
// evaluating arithmetic fields.
type ProjectEvaluate struct {
	Input  Node
	Fields []sqlparser.Field
}

func (*ProjectEvaluate) physicalNode() {}

// FormatTree implements Node.
func (p *ProjectEvaluate) FormatTree(depth int) string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = fmt.Sprintf("%v", f)
	}
	return indent(depth) + fmt.Sprintf("-> ProjectEvaluate(fields=[%s])", strings.Join(parts, ", ")) +
		"\n" + p.Input.FormatTree(depth+1)
}

// LimitRows truncates the input to its first Count rows.
type LimitRows struct {
	Input Node
	Count int
}

func (*LimitRows) physicalNode() {}

// FormatTree implements Node.
func (l *LimitRows) FormatTree(depth int) string {
	return indent(depth) + fmt.Sprintf("-> LimitRows(count=%d)", l.Count) +
		"\n" + l.Input.FormatTree(depth+1)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

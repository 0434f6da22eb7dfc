// Package sqlparser parses the restricted SQL subset
//
//	SELECT <field-list> FROM <table> [WHERE <condition>] [LIMIT <n>]
//
// into a Statement consumed by the logical plan builder. Keywords are
// case-insensitive; identifiers are canonicalized; string literals keep
// their original case.
package sqlparser

import (
	"fmt"

	"github.com/siftdb/sift/internal/row"
)

// Field is a sealed interface over the two projection field kinds.
// Only Column and Arith implement it.
type Field interface {
	fieldNode() // Sealed - only types in this package implement it
}

// Column is a bare column-name projection field.
type Column struct {
	Name string
}

func (Column) fieldNode() {}

// String renders the field as it would appear in a SELECT list.
func (c Column) String() string {
	return c.Name
}

// Arith is an arithmetic projection field: a column combined with a
// numeric literal. The literal is always row.Int or row.Float, never a
// second column reference.
type Arith struct {
	Op      string // one of + - * /
	Column  string
	Literal row.Value
}

func (Arith) fieldNode() {}

// String renders the field as it would appear in a SELECT list.
func (a Arith) String() string {
	return a.Column + a.Op + row.Display(a.Literal)
}

// Condition is a single WHERE comparison. The literal's type, not the
// column's runtime value, decides whether evaluation compares
// numerically or lexically.
type Condition struct {
	Op      string // one of < > <= >= = != <>
	Column  string
	Literal row.Value
}

// String renders the condition as it would appear in a WHERE clause.
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, row.Literal(c.Literal))
}

// Statement is the parsed form of one query. It is built once per
// query text and consumed once by the logical plan builder.
type Statement struct {
	Fields  []Field
	Table   string
	Filters []Condition
	Limit   *int
}

package executor

import (
	"strings"

	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

var opWords = map[string]string{
	"+": "plus",
	"-": "minus",
	"*": "times",
	"/": "div",
}

// evalProjection builds a fresh record holding only the requested
// fields, in requested order. Bare fields copy the value under the
// same key; arithmetic fields compute a float result under a derived
// key. Values that cannot be computed come through as null.
func evalProjection(rec row.Record, fields []sqlparser.Field) row.Record {
	out := make(row.Record, len(fields))

	for _, f := range fields {
		switch field := f.(type) {
		case sqlparser.Column:
			out[field.Name] = rec.Get(field.Name)

		case sqlparser.Arith:
			out[outputColumn(field)] = evalArith(rec.Get(field.Column), field)
		}
	}

	return out
}

// outputColumn derives the output key for an arithmetic field:
// column, word form of the operator, and the literal, joined by
// underscores with any decimal point replaced so the key stays
// identifier-safe. "age+10" becomes "age_plus_10", "rate*1.5"
// becomes "rate_times_1_5".
func outputColumn(f sqlparser.Arith) string {
	word, ok := opWords[f.Op]
	if !ok {
		word = f.Op
	}
	key := f.Column + "_" + word + "_" + row.Display(f.Literal)
	return strings.ReplaceAll(key, ".", "_")
}

// evalArith applies the field's operator to the record value and the
// literal. A missing or non-numeric value yields null; so does
// division by a zero literal.
func evalArith(v row.Value, f sqlparser.Arith) row.Value {
	x, ok := row.AsFloat(v)
	if !ok {
		return row.Null{}
	}
	y, ok := row.AsFloat(f.Literal)
	if !ok {
		return row.Null{}
	}

	switch f.Op {
	case "+":
		return row.Float(x + y)
	case "-":
		return row.Float(x - y)
	case "*":
		return row.Float(x * y)
	case "/":
		if y == 0 {
			return row.Null{}
		}
		return row.Float(x / y)
	default:
		return row.Null{}
	}
}

package executor

import (
	"math"
	"strings"

	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/sqlparser"
)

// floatEqualityEpsilon is the tolerance for numeric equality, so that
// representation artifacts like 0.1+0.2 still compare equal to 0.3.
const floatEqualityEpsilon = 1e-9

// evalCondition evaluates a WHERE condition against one record. The
// literal's type picks the comparison: numeric literals compare as
// floats, string literals compare case-insensitively and support only
// equality and inequality. A missing column, an unconvertible value,
// or an unsupported operator/type pairing is false, never an error.
func evalCondition(rec row.Record, cond sqlparser.Condition) bool {
	val := rec.Get(cond.Column)
	if _, isNull := val.(row.Null); isNull {
		return false
	}

	switch lit := cond.Literal.(type) {
	case row.Int, row.Float:
		want, _ := row.AsFloat(lit)
		got, ok := row.AsFloat(val)
		if !ok {
			return false
		}
		return compareNumeric(cond.Op, got, want)

	case row.Str:
		return compareString(cond.Op, row.Display(val), string(lit))

	default:
		return false
	}
}

func compareNumeric(op string, got, want float64) bool {
	switch op {
	case "<":
		return got < want
	case ">":
		return got > want
	case "<=":
		return got <= want
	case ">=":
		return got >= want
	case "=", "==":
		return math.Abs(got-want) < floatEqualityEpsilon
	case "!=", "<>":
		return math.Abs(got-want) >= floatEqualityEpsilon
	default:
		return false
	}
}

func compareString(op, got, want string) bool {
	switch op {
	case "=", "==":
		return strings.EqualFold(got, want)
	case "!=", "<>":
		return !strings.EqualFold(got, want)
	default:
		// Ordering comparisons are not defined for string literals.
		return false
	}
}

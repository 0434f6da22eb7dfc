package row

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Value is a sealed interface over the types a record field can hold.
// Only Null, Int, Float, and Str implement it. The marker method keeps
// the set closed so evaluation code can type-switch exhaustively.
type Value interface {
	rowValue() // Sealed - only types in this package implement it
}

// Null represents an absent value. A record key that is missing and a
// record key holding Null read back identically through Record.Get.
type Null struct{}

func (Null) rowValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Int represents an integer value.
type Int int64

func (Int) rowValue() {}

// MarshalJSON implements json.Marshaler for Int.
func (v Int) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}

// Float represents a floating-point value.
type Float float64

func (Float) rowValue() {}

// MarshalJSON implements json.Marshaler for Float.
func (v Float) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(v), 'g', -1, 64), nil
}

// Str represents a string value.
type Str string

func (Str) rowValue() {}

// MarshalJSON implements json.Marshaler for Str.
func (v Str) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(v)+2)
	return strconv.AppendQuote(out, string(v)), nil
}

// AsFloat converts a value to float64 for numeric comparison and
// arithmetic. Strings are parsed; a non-numeric string or a Null
// reports false rather than an error.
func AsFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Float:
		return float64(val), true
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Display returns the plain string form of a value, used for
// case-insensitive string comparison and for output column naming.
// Floats render in the shortest form that round-trips ("1.5", "40").
func Display(v Value) string {
	switch val := v.(type) {
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Str:
		return string(val)
	default:
		return "null"
	}
}

// Literal returns the SQL-literal form of a value: strings are
// single-quoted, numbers render as Display. Used by plan formatting.
func Literal(v Value) string {
	if s, ok := v.(Str); ok {
		return "'" + string(s) + "'"
	}
	return Display(v)
}

// CanonicalName normalizes an identifier (column or table name) to its
// canonical form: NFC-normalized and lower-cased. Both the parser and
// CSV ingestion route names through here so lookups always agree.
func CanonicalName(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

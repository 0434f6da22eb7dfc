package sqlparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/siftdb/sift/internal/row"
)

var (
	selectRe = regexp.MustCompile(`(?i)SELECT\s+(.*?)\s+FROM`)
	fromRe   = regexp.MustCompile(`(?i)FROM\s+(\w+)`)
	whereRe  = regexp.MustCompile(`(?i)WHERE\s+(.*?)(?:\s+LIMIT|\s*$)`)
	limitRe  = regexp.MustCompile(`(?i)LIMIT\s+(\d+)`)

	// Arithmetic projection field: identifier, operator, numeric literal.
	arithRe = regexp.MustCompile(`^(\w+)\s*([+\-*/])\s*([\d.]+)`)

	// Comparison operators, longest first so <= is never split as < then =.
	compareRe = regexp.MustCompile(`\s*(<=|>=|<>|!=|<|>|=)\s*`)
)

// Parse parses a query into a Statement. It fails with a *SyntaxError
// when the SELECT or FROM clause is missing or an arithmetic field
// carries an unparseable literal.
func Parse(query string) (Statement, error) {
	selectMatch := selectRe.FindStringSubmatch(query)
	if selectMatch == nil {
		return Statement{}, &SyntaxError{Msg: "missing SELECT clause"}
	}

	fields, err := parseFields(selectMatch[1])
	if err != nil {
		return Statement{}, err
	}

	fromMatch := fromRe.FindStringSubmatch(query)
	if fromMatch == nil {
		return Statement{}, &SyntaxError{Msg: "missing FROM clause"}
	}
	table := row.CanonicalName(fromMatch[1])

	var filters []Condition
	if whereMatch := whereRe.FindStringSubmatch(query); whereMatch != nil {
		if cond, ok := parseCondition(strings.TrimSpace(whereMatch[1])); ok {
			filters = append(filters, cond)
		}
	}

	var limit *int
	if limitMatch := limitRe.FindStringSubmatch(query); limitMatch != nil {
		if n, convErr := strconv.Atoi(limitMatch[1]); convErr == nil {
			limit = &n
		}
	}

	return Statement{
		Fields:  fields,
		Table:   table,
		Filters: filters,
		Limit:   limit,
	}, nil
}

// parseFields splits the SELECT list on commas and classifies each
// entry as an arithmetic expression or a bare column reference.
func parseFields(list string) ([]Field, error) {
	raw := strings.Split(list, ",")
	fields := make([]Field, 0, len(raw))

	for _, entry := range raw {
		entry = strings.TrimSpace(entry)

		if m := arithRe.FindStringSubmatch(entry); m != nil {
			lit, err := parseNumber(m[3])
			if err != nil {
				return nil, &SyntaxError{
					Msg: fmt.Sprintf("invalid arithmetic value in SELECT: %s", m[3]),
				}
			}
			fields = append(fields, Arith{
				Op:      m[2],
				Column:  row.CanonicalName(m[1]),
				Literal: lit,
			})
			continue
		}

		fields = append(fields, Column{Name: row.CanonicalName(entry)})
	}

	return fields, nil
}

// parseCondition splits a WHERE clause on its comparison operator.
// Anything other than exactly one operator occurrence (a compound
// AND/OR clause, for example) yields no condition rather than an
// error; the grammar supports a single predicate only.
func parseCondition(clause string) (Condition, bool) {
	locs := compareRe.FindAllStringSubmatchIndex(clause, -1)
	if len(locs) != 1 {
		return Condition{}, false
	}

	loc := locs[0]
	col := strings.TrimSpace(clause[:loc[0]])
	op := clause[loc[2]:loc[3]]
	val := strings.TrimSpace(clause[loc[1]:])

	return Condition{
		Op:      op,
		Column:  row.CanonicalName(col),
		Literal: parseLiteral(val),
	}, true
}

// parseLiteral types a WHERE literal: a single-quoted string keeps its
// case with the quotes stripped; otherwise a token with a decimal
// point that parses as a number is a float, a token of digits is an
// integer, and anything else stays a raw string.
func parseLiteral(raw string) row.Value {
	if len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") {
		return row.Str(raw[1 : len(raw)-1])
	}
	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return row.Float(f)
		}
		return row.Str(raw)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return row.Int(n)
	}
	return row.Str(raw)
}

// parseNumber types an arithmetic literal from the SELECT list: float
// when it carries a decimal point, integer otherwise.
func parseNumber(raw string) (row.Value, error) {
	if strings.Contains(raw, ".") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return row.Float(f), nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return row.Int(n), nil
}

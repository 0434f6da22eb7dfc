package physical

import (
	"errors"
	"fmt"

	"github.com/siftdb/sift/internal/logical"
)

// UnknownOperatorError reports a logical node that lowering does not
// recognize. The builder and optimizer only ever produce the four
// known operators, so seeing this error means an internal invariant
// broke; failing loudly beats executing an operator we don't
// understand.
type UnknownOperatorError struct {
	Operator string
}

// Error implements the error interface.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown logical operator: %s", e.Operator)
}

// IsUnknownOperatorError reports whether the error is an
// UnknownOperatorError. Uses errors.As to handle wrapped errors.
func IsUnknownOperatorError(err error) bool {
	var ue *UnknownOperatorError
	return errors.As(err, &ue)
}

// Lower converts a logical plan into its physical counterpart,
// children first. The mapping is one-to-one: argument bags are carried
// over verbatim and only the operator names change.
func Lower(plan logical.Node) (Node, error) {
	switch n := plan.(type) {
	case *logical.Scan:
		return &SequentialScan{Table: n.Table}, nil

	case *logical.Filter:
		child, err := Lower(n.Input)
		if err != nil {
			return nil, err
		}
		return &FilterIterative{Input: child, Condition: n.Condition}, nil

	case *logical.Project:
		child, err := Lower(n.Input)
		if err != nil {
			return nil, err
		}
		return &ProjectEvaluate{Input: child, Fields: n.Fields}, nil

	case *logical.Limit:
		child, err := Lower(n.Input)
		if err != nil {
			return nil, err
		}
		return &LimitRows{Input: child, Count: n.Count}, nil

	default:
		return nil, &UnknownOperatorError{Operator: fmt.Sprintf("%T", plan)}
	}
}

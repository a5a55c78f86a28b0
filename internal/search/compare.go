package search

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidComparison is returned when a comparison value carries a
// malformed numeric operand, e.g. ">=abc".
var ErrInvalidComparison = errors.New("invalid comparison value")

// Op identifies a comparison operator parsed from a filter value.
type Op string

const (
	OpGte Op = ">="
	OpLte Op = "<="
	OpGt  Op = ">"
	OpLt  Op = "<"
	OpEq  Op = "=="
)

// Predicate is a parsed comparison: an operator paired with its numeric
// operand. "==5" and a bare "5" both parse to {OpEq, 5}; there is no
// separate bare-number shape downstream.
type Predicate struct {
	Op    Op
	Value float64
}

// two-character operators are checked before their one-character prefixes
// so ">" never matches ">=".
var operators = []Op{OpGte, OpLte, OpEq, OpGt, OpLt}

// ParseComparison parses a raw filter value into a Predicate. An empty
// value means "no constraint" and returns (nil, nil). A recognized
// operator prefix followed by anything that does not parse as a decimal
// number is rejected with ErrInvalidComparison rather than silently
// producing a NaN operand.
func ParseComparison(raw string) (*Predicate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	op := OpEq
	operand := raw
	for _, candidate := range operators {
		if strings.HasPrefix(raw, string(candidate)) {
			op = candidate
			operand = raw[len(candidate):]
			break
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
	if err != nil {
		return nil, ErrInvalidComparison
	}
	return &Predicate{Op: op, Value: value}, nil
}

// Matches reports whether v satisfies the predicate. It is the in-process
// counterpart of the SQL comparison used on the derived calories column.
func (p *Predicate) Matches(v float64) bool {
	switch p.Op {
	case OpGte:
		return v >= p.Value
	case OpLte:
		return v <= p.Value
	case OpGt:
		return v > p.Value
	case OpLt:
		return v < p.Value
	default:
		return v == p.Value
	}
}

package property

import "math/rand"

// WeightedOperator is one comparison-operator token with its selection weight.
type WeightedOperator struct {
	Token  string
	Weight float64
}

// OperatorTable is an ordered weighted table of comparison-operator tokens.
type OperatorTable []WeightedOperator

// Pick draws one operator token from the table. The walk subtracts weights
// from a single uniform draw; accumulated float error falls back to the last
// entry so the pick never comes up empty on a non-empty table.
func (t OperatorTable) Pick(r *rand.Rand) string {
	if len(t) == 0 {
		return ""
	}
	n := r.Float64()
	for _, op := range t {
		if n < op.Weight {
			return op.Token
		}
		n -= op.Weight
	}
	return t[len(t)-1].Token
}

// Operator tables shared across all properties. The weights mirror the
// probabilities the target services tolerate best: equality-heavy for the
// general case, even splits elsewhere.
var (
	// ExpressionOperators is the full comparison set.
	ExpressionOperators = OperatorTable{
		{Token: "eq", Weight: 0.3},
		{Token: "ne", Weight: 0.3},
		{Token: "gt", Weight: 0.1},
		{Token: "ge", Weight: 0.1},
		{Token: "lt", Weight: 0.1},
		{Token: "le", Weight: 0.1},
	}

	// BooleanOperators applies to Edm.Boolean properties.
	BooleanOperators = OperatorTable{
		{Token: "eq", Weight: 0.5},
		{Token: "ne", Weight: 0.5},
	}

	// IntervalOperators applies to interval-restricted properties.
	IntervalOperators = OperatorTable{
		{Token: "ge", Weight: 0.5},
		{Token: "le", Weight: 0.5},
	}

	// EqualityOperators applies to single-value and multi-value restricted
	// properties.
	EqualityOperators = OperatorTable{
		{Token: "eq", Weight: 1.0},
	}
)

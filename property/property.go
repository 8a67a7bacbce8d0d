package property

import "math/rand"

// Property is one queryable property of an entity type together with its
// fuzzing capabilities. All randomness flows through the caller's rand
// source; a Property holds no mutable state.
type Property struct {
	Name              string
	Type              Type
	Filterable        bool
	MaxLength         int
	FilterRestriction FilterRestriction
}

// Generate produces a random literal token matching the property's type.
func (p *Property) Generate(r *rand.Rand) string {
	switch p.Type {
	case TypeString:
		return GenerateString(r, p.MaxLength)
	case TypeInt16:
		return GenerateInt16(r)
	case TypeInt32:
		return GenerateInt32(r)
	case TypeInt64:
		return GenerateInt64(r)
	case TypeByte:
		return GenerateByte(r)
	case TypeSByte:
		return GenerateSByte(r)
	case TypeSingle:
		return GenerateSingle(r)
	case TypeDecimal:
		return GenerateDecimal(r)
	case TypeBoolean:
		return GenerateBoolean(r)
	case TypeGuid:
		return GenerateGuid(r)
	case TypeDateTime:
		return GenerateDateTime(r)
	case TypeDateTimeOffset:
		return GenerateDateTimeOffset(r)
	case TypeTime:
		return GenerateTime(r)
	case TypeBinary:
		return GenerateBinary(r)
	default:
		return "null"
	}
}

// Mutate derives a new literal from an existing one. Types without a
// dedicated mutator return the value unchanged.
func (p *Property) Mutate(r *rand.Rand, value string) string {
	switch p.Type {
	case TypeString:
		return MutateString(r, value)
	case TypeInt16, TypeInt32, TypeInt64, TypeByte, TypeSByte, TypeSingle, TypeDecimal:
		return MutateNumber(r, value)
	case TypeGuid:
		return MutateGuid(r, value)
	case TypeBoolean:
		return MutateBoolean(r, value)
	default:
		return value
	}
}

// Operators returns the weighted comparison-operator table for this
// property. Interval-restricted properties alternate randomly between the
// interval set and plain equality, one pick per call.
func (p *Property) Operators(r *rand.Rand) OperatorTable {
	switch {
	case p.FilterRestriction == RestrictionSingleValue,
		p.FilterRestriction == RestrictionMultiValue:
		return EqualityOperators
	case p.FilterRestriction == RestrictionInterval:
		if r.Intn(2) == 0 {
			return IntervalOperators
		}
		return EqualityOperators
	case p.Type == TypeBoolean:
		return BooleanOperators
	default:
		return ExpressionOperators
	}
}

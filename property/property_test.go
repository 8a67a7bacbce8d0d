package property

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1234))
}

func TestTypeFromEdm(t *testing.T) {
	assert.Equal(t, TypeString, TypeFromEdm("Edm.String"))
	assert.Equal(t, TypeDateTimeOffset, TypeFromEdm("Edm.DateTimeOffset"))
	assert.Equal(t, TypeUnknown, TypeFromEdm("Edm.Geography"))
}

func TestOperatorTablePickWeights(t *testing.T) {
	r := newRand()
	table := OperatorTable{{Token: "eq", Weight: 1.0}}
	for i := 0; i < 50; i++ {
		assert.Equal(t, "eq", table.Pick(r))
	}
	assert.Empty(t, OperatorTable{}.Pick(r))
}

func TestOperatorTablePickCoversAllTokens(t *testing.T) {
	r := newRand()
	seen := map[string]bool{}
	for i := 0; i < 5000; i++ {
		seen[ExpressionOperators.Pick(r)] = true
	}
	for _, op := range []string{"eq", "ne", "gt", "ge", "lt", "le"} {
		assert.True(t, seen[op], "operator %s never picked", op)
	}
}

func TestOperatorsByRestrictionKind(t *testing.T) {
	r := newRand()

	single := &Property{Name: "ID", Type: TypeInt32, FilterRestriction: RestrictionSingleValue}
	assert.Equal(t, EqualityOperators, single.Operators(r))

	multi := &Property{Name: "ID", Type: TypeString, FilterRestriction: RestrictionMultiValue}
	assert.Equal(t, EqualityOperators, multi.Operators(r))

	boolean := &Property{Name: "IsActive", Type: TypeBoolean}
	assert.Equal(t, BooleanOperators, boolean.Operators(r))

	plain := &Property{Name: "Name", Type: TypeString}
	assert.Equal(t, ExpressionOperators, plain.Operators(r))

	// Interval alternates between the interval table and equality.
	interval := &Property{Name: "Date", Type: TypeDateTime, FilterRestriction: RestrictionInterval}
	sawInterval, sawEquality := false, false
	for i := 0; i < 200 && !(sawInterval && sawEquality); i++ {
		switch len(interval.Operators(r)) {
		case len(IntervalOperators):
			sawInterval = true
		case len(EqualityOperators):
			sawEquality = true
		}
	}
	assert.True(t, sawInterval, "interval table never returned")
	assert.True(t, sawEquality, "equality table never returned")
}

func TestGenerateLiteralShapes(t *testing.T) {
	r := newRand()
	cases := []struct {
		typ     Type
		pattern string
	}{
		{TypeString, `^'[a-zA-Z0-9]+'$`},
		{TypeInt16, `^-?\d+$`},
		{TypeInt32, `^-?\d+$`},
		{TypeInt64, `^-?\d+L$`},
		{TypeByte, `^\d+$`},
		{TypeSByte, `^-?\d+$`},
		{TypeSingle, `^-?\d+\.\d+f$`},
		{TypeDecimal, `^\d+\.\d+m$`},
		{TypeBoolean, `^(true|false)$`},
		{TypeGuid, `^guid'[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}'$`},
		{TypeDateTime, `^datetime'\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}'$`},
		{TypeDateTimeOffset, `^datetimeoffset'\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z'$`},
		{TypeTime, `^time'PT\d+H\d+M\d+S'$`},
		{TypeBinary, `^binary'([0-9A-F]{2})+'$`},
	}
	for _, tc := range cases {
		p := &Property{Name: "P", Type: tc.typ}
		re := regexp.MustCompile(tc.pattern)
		for i := 0; i < 25; i++ {
			literal := p.Generate(r)
			assert.Regexp(t, re, literal, "type %s", tc.typ)
		}
	}
}

func TestGenerateStringHonorsMaxLength(t *testing.T) {
	r := newRand()
	p := &Property{Name: "Code", Type: TypeString, MaxLength: 4}
	for i := 0; i < 100; i++ {
		literal := p.Generate(r)
		// Quotes plus at most MaxLength characters.
		require.LessOrEqual(t, len(literal), 4+2)
		require.GreaterOrEqual(t, len(literal), 3)
	}
}

func TestMutateStringStaysQuoted(t *testing.T) {
	r := newRand()
	p := &Property{Name: "Name", Type: TypeString}
	value := "'hello'"
	for i := 0; i < 100; i++ {
		value = p.Mutate(r, value)
		assert.True(t, strings.HasPrefix(value, "'"), "lost opening quote: %s", value)
		assert.True(t, strings.HasSuffix(value, "'"), "lost closing quote: %s", value)
	}
}

func TestMutateNumberKeepsSuffix(t *testing.T) {
	r := newRand()
	p := &Property{Name: "Total", Type: TypeInt64}
	value := p.Mutate(r, "42L")
	assert.True(t, strings.HasSuffix(value, "L"), "lost suffix: %s", value)
	assert.NotEqual(t, "42L", value)
}

func TestMutateBooleanFlips(t *testing.T) {
	r := newRand()
	p := &Property{Name: "IsActive", Type: TypeBoolean}
	assert.Equal(t, "false", p.Mutate(r, "true"))
	assert.Equal(t, "true", p.Mutate(r, "false"))
}

func TestMutateGuidKeepsShape(t *testing.T) {
	r := newRand()
	p := &Property{Name: "Key", Type: TypeGuid}
	re := regexp.MustCompile(`^guid'[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}'$`)
	value := p.Generate(r)
	for i := 0; i < 50; i++ {
		value = p.Mutate(r, value)
		assert.Regexp(t, re, value)
	}
}

func TestMutateUnsupportedTypeIsIdentity(t *testing.T) {
	r := newRand()
	p := &Property{Name: "Raw", Type: TypeBinary}
	assert.Equal(t, "binary'0F'", p.Mutate(r, "binary'0F'"))
}

package filter

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odfuzzer/property"
)

func newPropGenerator(t *testing.T, props []*property.Property, cfg GeneratorConfig, seed int64) *Generator {
	t.Helper()
	gen, err := NewGenerator(props, nil, cfg, rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return gen
}

func TestNewGeneratorRequiresSomethingToGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewGenerator(nil, nil, DefaultGeneratorConfig(), rng, nil)
	assert.ErrorIs(t, err, ErrNothingToGenerate)

	empty := NewFunctionCatalog(nil, nil, DefaultCategoryWeights())
	_, err = NewGenerator(nil, empty, DefaultGeneratorConfig(), rng, nil)
	assert.ErrorIs(t, err, ErrNothingToGenerate)
}

func TestGenerateSingleBooleanProperty(t *testing.T) {
	props := []*property.Property{{Name: "IsActive", Type: property.TypeBoolean, Filterable: true}}
	cfg := DefaultGeneratorConfig()
	cfg.FunctionProbability = 0
	gen := newPropGenerator(t, props, cfg, 17)

	shape := regexp.MustCompile(`^IsActive (eq|ne) (true|false)$`)
	single := false
	for i := 0; i < 200 && !single; i++ {
		graph := gen.Generate()
		if len(graph.Parts()) != 1 {
			continue
		}
		single = true
		rendered, err := Render(graph)
		require.NoError(t, err)
		assert.Regexp(t, shape, rendered)
	}
	require.True(t, single, "no single-predicate expression in 200 passes")
}

func TestGeneratedGraphsAlwaysRender(t *testing.T) {
	props := []*property.Property{
		{Name: "Value", Type: property.TypeInt32, Filterable: true},
		{Name: "Total", Type: property.TypeInt64, Filterable: true},
	}
	cfg := DefaultGeneratorConfig()
	cfg.FunctionProbability = 0
	gen := newPropGenerator(t, props, cfg, 23)

	for i := 0; i < 1000; i++ {
		graph := gen.Generate()
		require.NotEmpty(t, graph.Parts())

		rendered, err := Render(graph)
		require.NoError(t, err)
		require.NotEmpty(t, rendered)
		require.Zero(t, parenImbalance(t, rendered), "unbalanced parentheses in %q", rendered)
	}
}

// parenImbalance returns open minus close and fails on a close before open.
func parenImbalance(t *testing.T, s string) int {
	t.Helper()
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			require.GreaterOrEqual(t, depth, 0, "close before open in %q", s)
		}
	}
	return depth
}

func TestGroupNestingNeverExceedsRecursionLimit(t *testing.T) {
	// Integer predicates only, so every parenthesis in the rendered string is
	// structural.
	props := []*property.Property{{Name: "Value", Type: property.TypeInt32, Filterable: true}}

	for limit := 1; limit <= 4; limit++ {
		cfg := DefaultGeneratorConfig()
		cfg.RecursionLimit = limit
		cfg.FunctionProbability = 0
		gen := newPropGenerator(t, props, cfg, int64(100+limit))

		for i := 0; i < 500; i++ {
			rendered, err := Render(gen.Generate())
			require.NoError(t, err)
			assert.LessOrEqual(t, maxParenDepth(rendered), limit,
				"limit %d exceeded by %q", limit, rendered)
		}
	}
}

func maxParenDepth(s string) int {
	depth, max := 0, 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			if depth > max {
				max = depth
			}
		case ')':
			depth--
		}
	}
	return max
}

func TestGenerateUsesOnlyGivenProperties(t *testing.T) {
	props := []*property.Property{
		{Name: "City", Type: property.TypeString, Filterable: true},
		{Name: "Region", Type: property.TypeString, Filterable: true},
	}
	cfg := DefaultGeneratorConfig()
	cfg.FunctionProbability = 0
	gen := newPropGenerator(t, props, cfg, 31)

	for i := 0; i < 300; i++ {
		for _, part := range gen.Generate().Parts() {
			require.Contains(t, []string{"City", "Region"}, part.Name)
			require.Empty(t, part.Function)
		}
	}
}

func TestGenerateFunctionsOnlyWithoutProperties(t *testing.T) {
	catalogProps := []*property.Property{{Name: "Name", Type: property.TypeString, Filterable: true}}
	catalog := NewFunctionCatalog(catalogProps, nil, DefaultCategoryWeights())
	gen, err := NewGenerator(nil, catalog, DefaultGeneratorConfig(), rand.New(rand.NewSource(41)), nil)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		for _, part := range gen.Generate().Parts() {
			require.NotEmpty(t, part.Function)
			require.Contains(t, part.Name, part.Function+"(")
		}
	}
}

func TestExcludedFunctionAbsentAcrossManyGraphs(t *testing.T) {
	catalogProps := []*property.Property{{Name: "Name", Type: property.TypeString, Filterable: true}}
	catalog := NewFunctionCatalog(catalogProps, []string{"concat"}, DefaultCategoryWeights())
	cfg := DefaultGeneratorConfig()
	cfg.FunctionProbability = 1
	gen, err := NewGenerator(catalogProps, catalog, cfg, rand.New(rand.NewSource(43)), nil)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		graph := gen.Generate()
		for _, part := range graph.Parts() {
			require.NotEqual(t, "concat", part.Function)
		}
		rendered, rerr := Render(graph)
		require.NoError(t, rerr)
		require.False(t, strings.Contains(rendered, "concat("), "concat leaked into %q", rendered)
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	props := []*property.Property{
		{Name: "Value", Type: property.TypeInt32, Filterable: true},
		{Name: "Name", Type: property.TypeString, Filterable: true},
	}
	cfg := DefaultGeneratorConfig()

	render := func(seed int64) string {
		gen := newPropGenerator(t, props, cfg, seed)
		rendered, err := Render(gen.Generate())
		require.NoError(t, err)
		return rendered
	}
	assert.Equal(t, render(99), render(99))
	// Not a guarantee, but two seeds agreeing on everything here would point
	// at a wiring bug in the random source.
	if render(1) == render(2) && render(3) == render(4) {
		t.Error("distinct seeds produced identical expressions")
	}
}

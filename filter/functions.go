package filter

import (
	"fmt"
	"math/rand"

	"odfuzzer/property"
	"odfuzzer/util"
)

// Category groups the built-in filter functions by the property type they
// take as their main argument.
type Category int

const (
	CategoryString Category = iota
	CategoryDate
	CategoryMath
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryString:
		return "string"
	case CategoryDate:
		return "date"
	case CategoryMath:
		return "math"
	default:
		return "unknown"
	}
}

// CategoryWeights are the relative selection probabilities of the function
// categories. Weights are renormalized over the categories that actually
// have eligible properties and non-excluded functions.
type CategoryWeights struct {
	String float64
	Date   float64
	Math   float64
}

// DefaultCategoryWeights favors string functions, which historically shake
// out the most defects.
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{String: 0.70, Date: 0.15, Math: 0.15}
}

func (w CategoryWeights) weight(c Category) float64 {
	switch c {
	case CategoryString:
		return w.String
	case CategoryDate:
		return w.Date
	case CategoryMath:
		return w.Math
	default:
		return 0
	}
}

// ReturnType describes what a built-in function evaluates to: the operator
// table usable against it and a generator for comparison operands of the
// matching type.
type ReturnType struct {
	EdmName   string
	Operators property.OperatorTable
	generate  func(*rand.Rand) string
}

// Generate produces a comparison-operand literal of the return type.
func (rt *ReturnType) Generate(r *rand.Rand) string {
	return rt.generate(r)
}

const functionStringOperandLength = 10

var (
	returnInt32 = &ReturnType{
		EdmName:   "Edm.Int32",
		Operators: property.ExpressionOperators,
		generate:  property.GenerateInt32,
	}
	returnString = &ReturnType{
		EdmName:   "Edm.String",
		Operators: property.ExpressionOperators,
		generate: func(r *rand.Rand) string {
			return property.GenerateString(r, functionStringOperandLength)
		},
	}
	returnBoolean = &ReturnType{
		EdmName:   "Edm.Boolean",
		Operators: property.BooleanOperators,
		generate:  property.GenerateBoolean,
	}
)

// FunctionCall is one generated built-in call usable as a predicate operand.
type FunctionCall struct {
	// Name is the bare function name, e.g. "startswith".
	Name string
	// Text is the rendered call, e.g. "startswith(Name, 'ab')".
	Text string
	// Properties names the properties passed as arguments.
	Properties []string
	// Params holds generated literal arguments, when any.
	Params []string
	// Return describes the call's result type.
	Return *ReturnType
}

// filterFunction is one constructor in a category's table.
type filterFunction struct {
	name  string
	build func(r *rand.Rand, props []*property.Property) FunctionCall
}

func pickProperty(r *rand.Rand, props []*property.Property) *property.Property {
	return props[r.Intn(len(props))]
}

// unaryCall covers the single-argument functions: name(Property).
func unaryCall(name string, ret *ReturnType) filterFunction {
	return filterFunction{
		name: name,
		build: func(r *rand.Rand, props []*property.Property) FunctionCall {
			p := pickProperty(r, props)
			return FunctionCall{
				Name:       name,
				Text:       fmt.Sprintf("%s(%s)", name, p.Name),
				Properties: []string{p.Name},
				Return:     ret,
			}
		},
	}
}

// literalCall covers name(Property, generated-literal).
func literalCall(name string, ret *ReturnType) filterFunction {
	return filterFunction{
		name: name,
		build: func(r *rand.Rand, props []*property.Property) FunctionCall {
			p := pickProperty(r, props)
			value := p.Generate(r)
			return FunctionCall{
				Name:       name,
				Text:       fmt.Sprintf("%s(%s, %s)", name, p.Name, value),
				Properties: []string{p.Name},
				Params:     []string{value},
				Return:     ret,
			}
		},
	}
}

const replaceLiteralLength = 5

var stringFunctions = []filterFunction{
	literalCall("substringof", returnBoolean),
	literalCall("startswith", returnBoolean),
	literalCall("endswith", returnBoolean),
	literalCall("indexof", returnInt32),
	unaryCall("length", returnInt32),
	unaryCall("tolower", returnString),
	unaryCall("toupper", returnString),
	unaryCall("trim", returnString),
	{
		name: "replace",
		build: func(r *rand.Rand, props []*property.Property) FunctionCall {
			p := pickProperty(r, props)
			find := property.GenerateString(r, replaceLiteralLength)
			with := property.GenerateString(r, replaceLiteralLength)
			return FunctionCall{
				Name:       "replace",
				Text:       fmt.Sprintf("replace(%s, %s, %s)", p.Name, find, with),
				Properties: []string{p.Name},
				Params:     []string{find, with},
				Return:     returnString,
			}
		},
	},
	{
		name: "substring",
		build: func(r *rand.Rand, props []*property.Property) FunctionCall {
			p := pickProperty(r, props)
			start := property.GenerateByte(r)
			if util.Chance(r, 0.5) {
				length := property.GenerateByte(r)
				return FunctionCall{
					Name:       "substring",
					Text:       fmt.Sprintf("substring(%s, %s, %s)", p.Name, start, length),
					Properties: []string{p.Name},
					Params:     []string{start, length},
					Return:     returnString,
				}
			}
			return FunctionCall{
				Name:       "substring",
				Text:       fmt.Sprintf("substring(%s, %s)", p.Name, start),
				Properties: []string{p.Name},
				Params:     []string{start},
				Return:     returnString,
			}
		},
	},
	{
		name: "concat",
		build: func(r *rand.Rand, props []*property.Property) FunctionCall {
			p := pickProperty(r, props)
			if util.Chance(r, 0.5) {
				value := property.GenerateString(r, 20)
				return FunctionCall{
					Name:       "concat",
					Text:       fmt.Sprintf("concat(%s, %s)", p.Name, value),
					Properties: []string{p.Name},
					Params:     []string{value},
					Return:     returnString,
				}
			}
			other := pickProperty(r, props)
			return FunctionCall{
				Name:       "concat",
				Text:       fmt.Sprintf("concat(%s, %s)", p.Name, other.Name),
				Properties: []string{p.Name, other.Name},
				Return:     returnString,
			}
		},
	},
}

var dateFunctions = []filterFunction{
	unaryCall("day", returnInt32),
	unaryCall("hour", returnInt32),
	unaryCall("minute", returnInt32),
	unaryCall("month", returnInt32),
	unaryCall("second", returnInt32),
	unaryCall("year", returnInt32),
}

var mathFunctions = []filterFunction{
	unaryCall("round", returnInt32),
	unaryCall("floor", returnInt32),
	unaryCall("ceiling", returnInt32),
}

func functionsFor(c Category) []filterFunction {
	switch c {
	case CategoryString:
		return stringFunctions
	case CategoryDate:
		return dateFunctions
	case CategoryMath:
		return mathFunctions
	default:
		return nil
	}
}

// FunctionCatalog owns the eligible properties of each function category and
// produces random built-in calls. The global function exclusion set is
// captured once at construction and is irreversible for the catalog's
// lifetime; candidates are filtered against it before every random pick.
type FunctionCatalog struct {
	categories map[Category][]*property.Property
	weights    CategoryWeights
	excluded   map[string]struct{}
}

// NewFunctionCatalog groups the given properties into function categories.
// Only filterable properties of a category-eligible type participate:
// strings feed the string functions, DateTime and DateTimeOffset the date
// functions, Decimal the math functions.
func NewFunctionCatalog(props []*property.Property, excludedFunctions []string, weights CategoryWeights) *FunctionCatalog {
	catalog := &FunctionCatalog{
		categories: map[Category][]*property.Property{},
		weights:    weights,
		excluded:   map[string]struct{}{},
	}
	for _, name := range excludedFunctions {
		catalog.excluded[name] = struct{}{}
	}
	for _, p := range props {
		if !p.Filterable {
			continue
		}
		switch p.Type {
		case property.TypeString:
			catalog.categories[CategoryString] = append(catalog.categories[CategoryString], p)
		case property.TypeDateTime, property.TypeDateTimeOffset:
			catalog.categories[CategoryDate] = append(catalog.categories[CategoryDate], p)
		case property.TypeDecimal:
			catalog.categories[CategoryMath] = append(catalog.categories[CategoryMath], p)
		}
	}
	return catalog
}

// Excluded reports whether the function name is globally excluded.
func (c *FunctionCatalog) Excluded(name string) bool {
	_, ok := c.excluded[name]
	return ok
}

func (c *FunctionCatalog) candidates(category Category) []filterFunction {
	if len(c.categories[category]) == 0 {
		return nil
	}
	var allowed []filterFunction
	for _, fn := range functionsFor(category) {
		if !c.Excluded(fn.name) {
			allowed = append(allowed, fn)
		}
	}
	return allowed
}

// HasCandidates reports whether any category can produce a call.
func (c *FunctionCatalog) HasCandidates() bool {
	for _, category := range []Category{CategoryString, CategoryDate, CategoryMath} {
		if len(c.candidates(category)) > 0 {
			return true
		}
	}
	return false
}

// Random produces one random built-in call. The category is drawn with the
// configured weights, renormalized over the categories that currently have
// candidates; the function within the category is drawn uniformly. Callers
// must check HasCandidates first; an exhausted catalog returns a zero call.
func (c *FunctionCatalog) Random(r *rand.Rand) FunctionCall {
	type available struct {
		category Category
		fns      []filterFunction
		weight   float64
	}
	var avail []available
	total := 0.0
	for _, category := range []Category{CategoryString, CategoryDate, CategoryMath} {
		fns := c.candidates(category)
		if len(fns) == 0 {
			continue
		}
		w := c.weights.weight(category)
		avail = append(avail, available{category: category, fns: fns, weight: w})
		total += w
	}
	if len(avail) == 0 {
		return FunctionCall{}
	}

	chosen := avail[len(avail)-1]
	if total > 0 {
		n := r.Float64() * total
		for _, a := range avail {
			if n < a.weight {
				chosen = a
				break
			}
			n -= a.weight
		}
	} else {
		chosen = avail[r.Intn(len(avail))]
	}

	fn := chosen.fns[r.Intn(len(chosen.fns))]
	return fn.build(r, c.categories[chosen.category])
}

package filter

import (
	"math/rand"

	"go.uber.org/zap"

	"odfuzzer/property"
	"odfuzzer/util"
)

// GeneratorConfig holds the grammar knobs of one filter generator.
type GeneratorConfig struct {
	// RecursionLimit bounds the grammar recursion. Once the running depth
	// exceeds it, only terminal expansion is permitted, so generation always
	// terminates and groups never nest deeper than the limit.
	RecursionLimit int
	// FunctionProbability is the chance an element is a built-in function
	// call rather than a plain property comparison.
	FunctionProbability float64
	// LogicalOperators is the weighted table of connective tokens.
	LogicalOperators property.OperatorTable
}

// DefaultGeneratorConfig returns the stock grammar configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RecursionLimit:      3,
		FunctionProbability: 0.3,
		LogicalOperators: property.OperatorTable{
			{Token: "and", Weight: 0.5},
			{Token: "or", Weight: 0.5},
		},
	}
}

// Generator builds random boolean filter expressions over one entity's
// filterable properties as expression graphs.
//
// The grammar, recursive and depth-bounded:
//
//	expression := element | child
//	child      := parent logical parent
//	parent     := expression | "(" child ")"
//	element    := (function-call | property) comparison-operator operand
//
// A fair coin decides each non-terminal choice; recursion depth advances on
// the expression and child productions and, past the limit, forces terminal
// expansion.
//
// A Generator is not safe for concurrent use: it owns per-pass wiring state
// and a single rand source.
type Generator struct {
	props   []*property.Property
	catalog *FunctionCatalog
	cfg     GeneratorConfig
	rng     *rand.Rand
	logger  *zap.Logger

	// Per-pass state, reset by Generate.
	graph *Graph
	stack groupStack
	depth int
	// finalizing counts groups closed since the last connective; the next
	// connective attaches to the outermost of them.
	finalizing int
	// rightPart is set after a connective is created and cleared once its
	// right-hand neighbor has been wired.
	rightPart bool
}

// NewGenerator creates a filter generator over the given filterable
// properties and function catalog. The catalog may be nil. Construction
// fails with ErrNothingToGenerate when neither properties nor catalog can
// produce a single element; callers are expected to check availability
// before constructing.
func NewGenerator(props []*property.Property, catalog *FunctionCatalog, cfg GeneratorConfig, rng *rand.Rand, logger *zap.Logger) (*Generator, error) {
	if len(props) == 0 && (catalog == nil || !catalog.HasCandidates()) {
		return nil, ErrNothingToGenerate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultGeneratorConfig()
	if cfg.RecursionLimit < 1 {
		cfg.RecursionLimit = defaults.RecursionLimit
	}
	if len(cfg.LogicalOperators) == 0 {
		cfg.LogicalOperators = defaults.LogicalOperators
	}
	return &Generator{
		props:   props,
		catalog: catalog,
		cfg:     cfg,
		rng:     rng,
		logger:  logger,
	}, nil
}

// Generate runs one grammar pass and returns the resulting expression
// graph. Generation cannot fail; termination is structural. The connective
// collection is left in reverse creation order so the renderer finds the
// outermost connective first.
func (g *Generator) Generate() *Graph {
	g.graph = NewGraph()
	g.stack = groupStack{}
	g.depth = 0
	g.finalizing = 0
	g.rightPart = false

	g.expression()
	g.graph.ReverseLogicals()

	g.logger.Debug("generated filter expression graph",
		zap.Int("parts", len(g.graph.Parts())),
		zap.Int("logicals", len(g.graph.Logicals())),
		zap.Int("groups", len(g.graph.Groups())))
	return g.graph
}

func (g *Generator) expression() {
	g.depth++
	if util.Chance(g.rng, 0.5) || g.depth > g.cfg.RecursionLimit {
		g.element()
	} else {
		g.child()
	}
}

func (g *Generator) parent() {
	if util.Chance(g.rng, 0.5) || g.depth > g.cfg.RecursionLimit {
		g.expression()
	} else {
		g.childChoice()
	}
}

func (g *Generator) childChoice() {
	if util.Chance(g.rng, 0.5) {
		g.child()
	} else {
		g.childGroup()
	}
}

func (g *Generator) child() {
	g.depth++
	g.parent()
	g.logical()
	g.parent()
}

// childGroup opens a parenthesized sub-expression. The group is pushed on
// the nesting stack so connectives created inside register as its members;
// closing is deferred to the connective that follows the group (see
// logical), which is why only the finalizing counter advances here.
func (g *Generator) childGroup() {
	group := g.graph.AddGroup()
	if g.rightPart {
		g.rightPart = false
		g.wireGroupAsRightNeighbor(group)
	}
	g.stack.push(group)
	g.child()
	g.finalizing++
}

// wireGroupAsRightNeighbor attaches a freshly opened group as the right
// operand of the pending connective, and registers that connective with the
// group currently enclosing it.
func (g *Generator) wireGroupAsRightNeighbor(group *Group) {
	logical := g.graph.LastLogical()
	logical.RightID = group.ID
	group.LeftID = logical.ID
	if enclosing := g.stack.top(); enclosing != nil {
		enclosing.LogicalIDs = append(enclosing.LogicalIDs, logical.ID)
	}
}

// logical creates the connective between two parent productions. When one
// or more groups have just closed, the connective attaches to the outermost
// closed group instead of the last part.
func (g *Generator) logical() {
	operator := g.cfg.LogicalOperators.Pick(g.rng)
	logical := g.graph.AddLogical(operator)

	if g.finalizing > 0 {
		closed := g.stack.pop(g.finalizing)
		g.finalizing = 0
		logical.LeftID = closed.ID
		closed.RightID = logical.ID
	} else {
		if open := g.stack.top(); open != nil {
			logical.GroupID = open.ID
		}
		last := g.graph.LastPart()
		logical.LeftID = last.ID
		last.RightID = logical.ID
	}
	g.rightPart = true
}

// element generates one leaf predicate.
func (g *Generator) element() {
	part := g.graph.AddPart()

	useFunction := g.catalog != nil && g.catalog.HasCandidates() &&
		(len(g.props) == 0 || util.Chance(g.rng, g.cfg.FunctionProbability))
	if useFunction {
		call := g.catalog.Random(g.rng)
		part.Name = call.Text
		part.Operator = call.Return.Operators.Pick(g.rng)
		part.Operand = call.Return.Generate(g.rng)
		part.Function = call.Name
		part.FuncProperties = call.Properties
		part.FuncParams = call.Params
	} else {
		p := g.props[g.rng.Intn(len(g.props))]
		part.Name = p.Name
		part.Operator = p.Operators(g.rng).Pick(g.rng)
		part.Operand = p.Generate(g.rng)
	}

	if g.rightPart {
		g.rightPart = false
		g.wirePartAsRightNeighbor(part)
	}
}

// wirePartAsRightNeighbor attaches a freshly created part as the right
// operand of the pending connective, and registers that connective with the
// group currently enclosing it.
func (g *Generator) wirePartAsRightNeighbor(part *Part) {
	logical := g.graph.LastLogical()
	logical.RightID = part.ID
	part.LeftID = logical.ID
	if open := g.stack.top(); open != nil {
		open.LogicalIDs = append(open.LogicalIDs, logical.ID)
		logical.GroupID = open.ID
	}
}

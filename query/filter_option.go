package query

import (
	"math/rand"

	"odfuzzer/filter"
)

// FilterOption generates $filter expressions for one entity set. The graph
// behind the most recent value stays reachable through Graph so an external
// mutation process can edit it and re-render.
type FilterOption struct {
	generator *filter.Generator
	// suffix is a forced trailing clause appended after rendering, configured
	// per entity set for services that reject unconstrained filters.
	suffix string
	graph  *filter.Graph
}

func (o *FilterOption) Name() string { return OptionFilter }

// Value generates a fresh expression graph and renders it. The random source
// argument is unused; the embedded generator owns its own.
func (o *FilterOption) Value(_ *rand.Rand) (string, error) {
	o.graph = o.generator.Generate()
	rendered, err := filter.Render(o.graph)
	if err != nil {
		return "", err
	}
	if o.suffix != "" {
		rendered += " " + o.suffix
	}
	return rendered, nil
}

// Graph returns the expression graph behind the last Value call, nil before
// the first.
func (o *FilterOption) Graph() *filter.Graph { return o.graph }

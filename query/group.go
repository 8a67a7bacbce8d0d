package query

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"odfuzzer/filter"
	"odfuzzer/metadata"
	"odfuzzer/property"
	"odfuzzer/restrictions"
)

// Group holds the usable query options of one entity set: the declared
// capabilities intersected with the loaded restrictions. Options an entity
// must always carry sit in the mandatory list; the rest are sampled per
// query.
type Group struct {
	entity    *metadata.EntitySet
	mandatory []Option
	optional  []Option
	filter    *FilterOption
}

func newGroup(entity *metadata.EntitySet, restr *restrictions.Restrictions, cfg Config, rng *rand.Rand, logger *zap.Logger) (*Group, error) {
	g := &Group{entity: entity}

	if err := g.buildFilter(restr, cfg, rng, logger); err != nil {
		return nil, err
	}
	if entity.Searchable && !restr.ForOption(OptionSearch).ExcludesEntity(entity.Name) {
		g.optional = append(g.optional, &SearchOption{maxLength: cfg.SearchMaxLength})
	}
	if entity.Topable && !restr.ForOption(OptionTop).ExcludesEntity(entity.Name) {
		g.optional = append(g.optional, &TopOption{max: cfg.TopMax})
	}
	if entity.Pageable && !restr.ForOption(OptionSkip).ExcludesEntity(entity.Name) {
		g.optional = append(g.optional, &SkipOption{max: cfg.SkipMax})
	}

	if len(g.mandatory) == 0 && len(g.optional) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotQueryable, entity.Name)
	}
	return g, nil
}

// buildFilter assembles the filter option over the restricted property view.
// An entity the filter option excludes, or one with nothing filterable left,
// simply gets no filter option unless filtering is mandatory for it, which
// makes the whole entity unqueryable.
func (g *Group) buildFilter(restr *restrictions.Restrictions, cfg Config, rng *rand.Rand, logger *zap.Logger) error {
	entity := g.entity
	opt := restr.ForOption(OptionFilter)

	var props []*property.Property
	if !opt.ExcludesEntity(entity.Name) {
		props = restrictedProperties(entity.FilterableProperties(), opt.ExcludedProperties(entity.Name))
	}
	if len(props) == 0 {
		if entity.RequiresFilter {
			return fmt.Errorf("%w: %s requires a filter but has no filterable properties left", ErrNotQueryable, entity.Name)
		}
		logger.Debug("entity set gets no filter option", zap.String("entity_set", entity.Name))
		return nil
	}

	catalog := filter.NewFunctionCatalog(props, opt.ExcludedFunctions(), cfg.CategoryWeights)
	gen, err := filter.NewGenerator(props, catalog, cfg.Generator, rng, logger)
	if err != nil {
		return fmt.Errorf("filter generator for %s: %w", entity.Name, err)
	}

	g.filter = &FilterOption{generator: gen, suffix: cfg.ForcedFilterSuffixes[entity.Name]}
	if entity.RequiresFilter {
		g.mandatory = append(g.mandatory, g.filter)
	} else {
		g.optional = append(g.optional, g.filter)
	}
	return nil
}

func restrictedProperties(props []*property.Property, excluded []string) []*property.Property {
	if len(excluded) == 0 {
		return props
	}
	drop := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		drop[name] = struct{}{}
	}
	var kept []*property.Property
	for _, p := range props {
		if _, ok := drop[p.Name]; !ok {
			kept = append(kept, p)
		}
	}
	return kept
}

// EntitySet returns the entity set this group queries.
func (g *Group) EntitySet() *metadata.EntitySet { return g.entity }

// Filter returns the group's filter option, nil when the entity set has
// none. The option exposes the last generated expression graph for external
// mutation.
func (g *Group) Filter() *FilterOption { return g.filter }

// RandomOptions draws a uniformly sized random subset of the optional
// options and appends every mandatory option after it. Mandatory options are
// never sampled away and appear exactly once.
func (g *Group) RandomOptions(r *rand.Rand) []Option {
	k := r.Intn(len(g.optional) + 1)
	perm := r.Perm(len(g.optional))

	opts := make([]Option, 0, k+len(g.mandatory))
	for _, i := range perm[:k] {
		opts = append(opts, g.optional[i])
	}
	return append(opts, g.mandatory...)
}

// Package query intersects service metadata with restrictions and produces
// random query-option combinations per entity set.
package query

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"odfuzzer/filter"
	"odfuzzer/metadata"
	"odfuzzer/restrictions"
)

// Config holds the query-level generation knobs.
type Config struct {
	Generator            filter.GeneratorConfig
	CategoryWeights      filter.CategoryWeights
	SearchMaxLength      int
	TopMax               int
	SkipMax              int
	ForcedFilterSuffixes map[string]string
}

// DefaultConfig returns the stock query configuration.
func DefaultConfig() Config {
	return Config{
		Generator:       filter.DefaultGeneratorConfig(),
		CategoryWeights: filter.DefaultCategoryWeights(),
		SearchMaxLength: 20,
		TopMax:          100,
		SkipMax:         100,
	}
}

// Builder turns a parsed service and its restrictions into queryable entity
// groups.
type Builder struct {
	service      *metadata.Service
	restrictions *restrictions.Restrictions
	cfg          Config
	rng          *rand.Rand
	logger       *zap.Logger
}

// NewBuilder creates a builder. The restrictions may be nil; a nil logger
// means no logging.
func NewBuilder(service *metadata.Service, restr *restrictions.Restrictions, cfg Config, rng *rand.Rand, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{service: service, restrictions: restr, cfg: cfg, rng: rng, logger: logger}
}

// Build assembles one group per queryable entity set. Entity sets with no
// usable options are skipped with a warning; a service where none remain is
// an error.
func (b *Builder) Build() (*QueryableEntities, error) {
	queryable := &QueryableEntities{}
	for _, entity := range b.service.EntitySets {
		group, err := newGroup(entity, b.restrictions, b.cfg, b.rng, b.logger)
		if err != nil {
			if errors.Is(err, ErrNotQueryable) {
				b.logger.Warn("skipping entity set", zap.String("entity_set", entity.Name), zap.Error(err))
				continue
			}
			return nil, err
		}
		queryable.groups = append(queryable.groups, group)
	}
	if len(queryable.groups) == 0 {
		return nil, ErrNoQueryableEntities
	}
	return queryable, nil
}

// QueryableEntities is the set of entity groups queries can be generated
// for.
type QueryableEntities struct {
	groups []*Group
}

// Groups returns the groups in entity-set declaration order.
func (q *QueryableEntities) Groups() []*Group { return q.groups }

// Group returns the group for the named entity set, nil when the set is not
// queryable.
func (q *QueryableEntities) Group(name string) *Group {
	for _, g := range q.groups {
		if g.entity.Name == name {
			return g
		}
	}
	return nil
}

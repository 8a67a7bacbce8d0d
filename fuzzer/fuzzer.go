// Package fuzzer drives corpus emission: it walks the queryable entity
// groups, synthesizes query strings, and hands deduplicated queries to an
// emit callback.
package fuzzer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"odfuzzer/metrics"
	"odfuzzer/query"
)

// DefaultDedupeSize bounds the duplicate-detection cache when the config
// leaves it unset.
const DefaultDedupeSize = 65536

// Config holds the corpus-emission knobs.
type Config struct {
	// DedupeSize is the capacity of the duplicate-detection cache.
	DedupeSize int
}

// Query is one emitted corpus entry.
type Query struct {
	ID        uuid.UUID
	EntitySet string
	Value     string
	CreatedAt time.Time
}

// Fuzzer emits query corpora over a set of queryable entities. It owns its
// random source and is not safe for concurrent use; run one Fuzzer per
// goroutine.
type Fuzzer struct {
	queryable *query.QueryableEntities
	cfg       Config
	rng       *rand.Rand
	logger    *zap.Logger
	seen      *lru.Cache[string, struct{}]
}

// New creates a fuzzer over the queryable entities. A nil logger means no
// logging.
func New(queryable *query.QueryableEntities, cfg Config, rng *rand.Rand, logger *zap.Logger) (*Fuzzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DedupeSize <= 0 {
		cfg.DedupeSize = DefaultDedupeSize
	}
	seen, err := lru.New[string, struct{}](cfg.DedupeSize)
	if err != nil {
		return nil, fmt.Errorf("dedupe cache: %w", err)
	}
	return &Fuzzer{queryable: queryable, cfg: cfg, rng: rng, logger: logger, seen: seen}, nil
}

// Run synthesizes count queries, spread round-robin across the entity
// groups, and passes each new one to emit. Duplicates are counted and
// skipped. The context is checked between iterations; generation itself is
// not cancellable. Emit errors abort the run.
func (f *Fuzzer) Run(ctx context.Context, count int, emit func(Query) error) error {
	groups := f.queryable.Groups()
	emitted, duplicates := 0, 0

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		group := groups[i%len(groups)]

		q, err := f.generate(group)
		if err != nil {
			f.logger.Warn("query generation failed",
				zap.String("entity_set", group.EntitySet().Name), zap.Error(err))
			continue
		}
		if _, dup := f.seen.Get(q.Value); dup {
			duplicates++
			metrics.DuplicateQueries.Inc()
			continue
		}
		f.seen.Add(q.Value, struct{}{})

		if err := emit(q); err != nil {
			return fmt.Errorf("emit query: %w", err)
		}
		emitted++
	}

	f.logger.Info("fuzzing run finished",
		zap.Int("requested", count),
		zap.Int("emitted", emitted),
		zap.Int("duplicates", duplicates))
	return nil
}

// generate synthesizes one query string for the group.
func (f *Fuzzer) generate(group *query.Group) (Query, error) {
	start := time.Now()
	defer func() {
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}()

	entity := group.EntitySet().Name
	var pairs []string
	for _, opt := range group.RandomOptions(f.rng) {
		value, err := opt.Value(f.rng)
		if err != nil {
			if opt.Name() == query.OptionFilter {
				metrics.RenderFailures.Inc()
			}
			return Query{}, fmt.Errorf("%s option: %w", opt.Name(), err)
		}
		if opt.Name() == query.OptionFilter {
			metrics.FiltersRendered.Inc()
		}
		pairs = append(pairs, opt.Name()+"="+value)
	}

	value := entity
	if len(pairs) > 0 {
		value += "?" + strings.Join(pairs, "&")
	}
	metrics.QueriesGenerated.WithLabelValues(entity).Inc()

	return Query{
		ID:        uuid.New(),
		EntitySet: entity,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}, nil
}

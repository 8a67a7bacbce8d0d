package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"odfuzzer/config"
	"odfuzzer/fuzzer"
	"odfuzzer/metadata"
	"odfuzzer/query"
	"odfuzzer/restrictions"
)

// newGenerateCmd creates the 'generate' subcommand
func newGenerateCmd() *cobra.Command {
	var (
		metadataPath     string
		restrictionsPath string
		outputPath       string
		count            int
		seed             int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a query corpus",
		Long: `Parse the service metadata, apply restrictions, and emit generated
queries one per line to stdout or the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("metadata") {
				cfg.Metadata = metadataPath
			}
			if cmd.Flags().Changed("restrictions") {
				cfg.Restrictions = restrictionsPath
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = outputPath
			}
			if cmd.Flags().Changed("count") {
				cfg.Queries = count
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cfg.Metadata == "" {
				return fmt.Errorf("no metadata document given (--metadata or config)")
			}

			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			return runGenerate(cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Path to the EDMX metadata document")
	cmd.Flags().StringVarP(&restrictionsPath, "restrictions", "r", "", "Path to a restriction file (YAML or JSON)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Corpus output file (default: stdout)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of queries to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")

	return cmd
}

func runGenerate(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// One random source for the whole run keeps --seed reproducible.
	rng := rand.New(rand.NewSource(seed))

	queryable, err := buildQueryable(cfg, rng, logger)
	if err != nil {
		return err
	}

	f, err := fuzzer.New(queryable, cfg.FuzzerConfig(), rng, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	w := bufio.NewWriter(out)
	emitted := 0
	start := time.Now()
	err = f.Run(ctx, cfg.Queries, func(q fuzzer.Query) error {
		emitted++
		_, werr := fmt.Fprintln(w, q.Value)
		return werr
	})
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}

	successColor.Fprintf(os.Stderr, "✓ emitted %d queries", emitted)
	infoColor.Fprintf(os.Stderr, " (%d requested, seed %d, %s)\n",
		cfg.Queries, seed, time.Since(start).Round(time.Millisecond))
	return nil
}

// buildQueryable parses metadata and restrictions and intersects them into
// queryable entity groups, with a progress spinner on a terminal.
func buildQueryable(cfg *config.Config, rng *rand.Rand, logger *zap.Logger) (*query.QueryableEntities, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " parsing metadata..."
	s.Writer = os.Stderr
	s.Start()
	defer s.Stop()

	service, err := metadata.ParseFile(cfg.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	var restr *restrictions.Restrictions
	if cfg.Restrictions != "" {
		if restr, err = restrictions.Load(cfg.Restrictions); err != nil {
			return nil, fmt.Errorf("failed to load restrictions: %w", err)
		}
	}

	s.Suffix = " building queryable entities..."
	return query.NewBuilder(service, restr, cfg.QueryConfig(), rng, logger).Build()
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

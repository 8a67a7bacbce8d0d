// Package config loads the fuzzer configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"odfuzzer/filter"
	"odfuzzer/fuzzer"
	"odfuzzer/query"
)

// Config holds all configuration for a fuzzing run.
type Config struct {
	// Metadata is the path to the EDMX metadata document.
	Metadata string `mapstructure:"metadata"`
	// Restrictions is the path to an optional restriction file (YAML or JSON).
	Restrictions string `mapstructure:"restrictions"`
	// Output is the corpus destination; empty means stdout.
	Output string `mapstructure:"output"`
	// Queries is the number of queries to generate.
	Queries int `mapstructure:"queries" validate:"gte=1"`
	// Seed seeds the random source; 0 means time-based.
	Seed int64 `mapstructure:"seed"`
	// DedupeSize is the capacity of the duplicate-detection cache.
	DedupeSize int `mapstructure:"dedupe_size" validate:"gte=1"`

	Generator struct {
		RecursionLimit      int     `mapstructure:"recursion_limit" validate:"gte=1,lte=10"`
		FunctionProbability float64 `mapstructure:"function_probability" validate:"gte=0,lte=1"`
		CategoryWeights     struct {
			String float64 `mapstructure:"string" validate:"gte=0"`
			Date   float64 `mapstructure:"date" validate:"gte=0"`
			Math   float64 `mapstructure:"math" validate:"gte=0"`
		} `mapstructure:"category_weights"`
	} `mapstructure:"generator"`

	Options struct {
		SearchMaxLength int `mapstructure:"search_max_length" validate:"gte=1"`
		TopMax          int `mapstructure:"top_max" validate:"gte=0"`
		SkipMax         int `mapstructure:"skip_max" validate:"gte=0"`
	} `mapstructure:"options"`

	// ForcedFilterSuffixes maps entity-set names to a clause appended after
	// every rendered filter, for services that reject unconstrained filters.
	ForcedFilterSuffixes map[string]string `mapstructure:"forced_filter_suffixes"`
}

func setDefaults(v *viper.Viper) {
	gen := filter.DefaultGeneratorConfig()
	weights := filter.DefaultCategoryWeights()
	qcfg := query.DefaultConfig()

	v.SetDefault("queries", 100)
	v.SetDefault("dedupe_size", fuzzer.DefaultDedupeSize)
	v.SetDefault("generator.recursion_limit", gen.RecursionLimit)
	v.SetDefault("generator.function_probability", gen.FunctionProbability)
	v.SetDefault("generator.category_weights.string", weights.String)
	v.SetDefault("generator.category_weights.date", weights.Date)
	v.SetDefault("generator.category_weights.math", weights.Math)
	v.SetDefault("options.search_max_length", qcfg.SearchMaxLength)
	v.SetDefault("options.top_max", qcfg.TopMax)
	v.SetDefault("options.skip_max", qcfg.SkipMax)
}

// Load reads configuration from the given file, falling back to
// odfuzzer.yaml in the working directory. Every key can be overridden
// through ODFUZZER_-prefixed environment variables. A missing file is fine;
// defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ODFUZZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("odfuzzer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// QueryConfig maps the loaded configuration onto the query-builder knobs.
func (c *Config) QueryConfig() query.Config {
	qcfg := query.DefaultConfig()
	qcfg.Generator.RecursionLimit = c.Generator.RecursionLimit
	qcfg.Generator.FunctionProbability = c.Generator.FunctionProbability
	qcfg.CategoryWeights = filter.CategoryWeights{
		String: c.Generator.CategoryWeights.String,
		Date:   c.Generator.CategoryWeights.Date,
		Math:   c.Generator.CategoryWeights.Math,
	}
	qcfg.SearchMaxLength = c.Options.SearchMaxLength
	qcfg.TopMax = c.Options.TopMax
	qcfg.SkipMax = c.Options.SkipMax
	qcfg.ForcedFilterSuffixes = c.ForcedFilterSuffixes
	return qcfg
}

// FuzzerConfig maps the loaded configuration onto the fuzzer knobs.
func (c *Config) FuzzerConfig() fuzzer.Config {
	return fuzzer.Config{DedupeSize: c.DedupeSize}
}

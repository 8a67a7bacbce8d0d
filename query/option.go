package query

import (
	"math/rand"
	"strconv"

	"odfuzzer/util"
)

// Query option names as they appear in URLs and restriction files.
const (
	OptionFilter  = "$filter"
	OptionSearch  = "search"
	OptionTop     = "$top"
	OptionSkip    = "$skip"
	OptionOrderBy = "$orderby"
)

// Option produces the value of one query option. Implementations are owned
// by a single Group and share its random source.
type Option interface {
	Name() string
	Value(r *rand.Rand) (string, error)
}

// SearchOption generates free-text search tokens.
type SearchOption struct {
	maxLength int
}

func (o *SearchOption) Name() string { return OptionSearch }

func (o *SearchOption) Value(r *rand.Rand) (string, error) {
	return util.Letters(r, 1+r.Intn(o.maxLength)), nil
}

// TopOption generates $top values.
type TopOption struct {
	max int
}

func (o *TopOption) Name() string { return OptionTop }

func (o *TopOption) Value(r *rand.Rand) (string, error) {
	return strconv.Itoa(r.Intn(o.max + 1)), nil
}

// SkipOption generates $skip values.
type SkipOption struct {
	max int
}

func (o *SkipOption) Name() string { return OptionSkip }

func (o *SkipOption) Value(r *rand.Rand) (string, error) {
	return strconv.Itoa(r.Intn(o.max + 1)), nil
}

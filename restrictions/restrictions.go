// Package restrictions loads and applies the exclusion configuration that
// narrows which entities, properties, and built-in functions the generator
// may use. Files are keyed by query-option name; inside each option the
// special keys $E_ALL$ and $F_ALL$ hold entity-wide and function-wide
// exclusions, and every other key maps an entity name to excluded property
// names.
package restrictions

// Special keys inside an option's exclusion block.
const (
	GlobalEntityKey   = "$E_ALL$"
	GlobalFunctionKey = "$F_ALL$"
)

// Restrictions holds per-option exclusion sets.
type Restrictions struct {
	exclude map[string]*OptionRestriction
}

// OptionRestriction is the exclusion set of one query option.
type OptionRestriction struct {
	entities   map[string]struct{}
	properties map[string][]string
	functions  []string
}

// ForOption returns the exclusion set for the named query option. The result
// is never nil; unrestricted options return an empty set.
func (r *Restrictions) ForOption(name string) *OptionRestriction {
	if r != nil {
		if opt, ok := r.exclude[name]; ok {
			return opt
		}
	}
	return &OptionRestriction{}
}

// ExcludesEntity reports whether the entity set is excluded from the option
// entirely.
func (o *OptionRestriction) ExcludesEntity(name string) bool {
	_, ok := o.entities[name]
	return ok
}

// ExcludedProperties returns the property names excluded for the entity set.
func (o *OptionRestriction) ExcludedProperties(entity string) []string {
	return o.properties[entity]
}

// ExcludedFunctions returns the globally excluded built-in function names.
func (o *OptionRestriction) ExcludedFunctions() []string {
	return o.functions
}

// IsEmpty reports whether the option carries no exclusions at all.
func (o *OptionRestriction) IsEmpty() bool {
	return len(o.entities) == 0 && len(o.properties) == 0 && len(o.functions) == 0
}

// fromRaw converts the decoded file structure into the lookup form.
func fromRaw(raw rawFile) *Restrictions {
	r := &Restrictions{exclude: map[string]*OptionRestriction{}}
	for option, block := range raw.Exclude {
		opt := &OptionRestriction{
			entities:   map[string]struct{}{},
			properties: map[string][]string{},
		}
		for key, values := range block {
			switch key {
			case GlobalEntityKey:
				for _, entity := range values {
					opt.entities[entity] = struct{}{}
				}
			case GlobalFunctionKey:
				opt.functions = append(opt.functions, values...)
			default:
				opt.properties[key] = append(opt.properties[key], values...)
			}
		}
		r.exclude[option] = opt
	}
	return r
}

// rawFile mirrors the on-disk restriction format.
type rawFile struct {
	Exclude map[string]map[string][]string `yaml:"Exclude" json:"Exclude"`
}

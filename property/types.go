// Package property implements the per-property capability provider: literal
// generation, literal mutation, and weighted comparison-operator tables keyed
// by the property's EDM type and filter restriction.
package property

// Type enumerates the supported EDM literal types. The set is closed; every
// capability (generator, mutator, operator table) dispatches over it.
type Type int

const (
	TypeUnknown Type = iota
	TypeString
	TypeInt16
	TypeInt32
	TypeInt64
	TypeByte
	TypeSByte
	TypeSingle
	TypeDecimal
	TypeBoolean
	TypeGuid
	TypeDateTime
	TypeDateTimeOffset
	TypeTime
	TypeBinary
)

// edmNames maps EDM type names to Type values.
var edmNames = map[string]Type{
	"Edm.String":         TypeString,
	"Edm.Int16":          TypeInt16,
	"Edm.Int32":          TypeInt32,
	"Edm.Int64":          TypeInt64,
	"Edm.Byte":           TypeByte,
	"Edm.SByte":          TypeSByte,
	"Edm.Single":         TypeSingle,
	"Edm.Decimal":        TypeDecimal,
	"Edm.Boolean":        TypeBoolean,
	"Edm.Guid":           TypeGuid,
	"Edm.DateTime":       TypeDateTime,
	"Edm.DateTimeOffset": TypeDateTimeOffset,
	"Edm.Time":           TypeTime,
	"Edm.Binary":         TypeBinary,
}

// TypeFromEdm resolves an EDM type name such as "Edm.String". Unrecognized
// names map to TypeUnknown; those properties are skipped by the builder.
func TypeFromEdm(name string) Type {
	return edmNames[name]
}

// String returns the EDM name of the type.
func (t Type) String() string {
	for name, typ := range edmNames {
		if typ == t {
			return name
		}
	}
	return "Edm.Unknown"
}

// FilterRestriction narrows the comparison operators a property may be
// queried with, per the service's filter-restriction annotation.
type FilterRestriction int

const (
	RestrictionNone FilterRestriction = iota
	RestrictionSingleValue
	RestrictionMultiValue
	RestrictionInterval
)

// String returns the annotation spelling of the restriction.
func (r FilterRestriction) String() string {
	switch r {
	case RestrictionSingleValue:
		return "single-value"
	case RestrictionMultiValue:
		return "multi-value"
	case RestrictionInterval:
		return "interval"
	default:
		return "none"
	}
}

// RestrictionFromAnnotation resolves a sap:filter-restriction value.
func RestrictionFromAnnotation(value string) FilterRestriction {
	switch value {
	case "single-value":
		return RestrictionSingleValue
	case "multi-value":
		return RestrictionMultiValue
	case "interval":
		return RestrictionInterval
	default:
		return RestrictionNone
	}
}

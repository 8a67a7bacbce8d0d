// Package metadata parses OData EDMX metadata documents into the entity-set
// model the query builder consumes. Documents are read from disk or bytes;
// retrieving them from a live service is outside this tool's scope.
package metadata

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"

	"odfuzzer/property"
)

// Service is the parsed, queryable view of one service's metadata.
type Service struct {
	EntitySets []*EntitySet
}

// EntitySet describes one entity set with its query capabilities and the
// ordered property collection of its entity type.
type EntitySet struct {
	Name           string
	EntityTypeName string
	Searchable     bool
	Topable        bool
	Pageable       bool
	RequiresFilter bool
	Properties     []*property.Property
}

// EntitySet lookups by name.
func (s *Service) EntitySet(name string) *EntitySet {
	for _, set := range s.EntitySets {
		if set.Name == name {
			return set
		}
	}
	return nil
}

// FilterableProperties returns the properties usable in filter expressions,
// in declaration order.
func (e *EntitySet) FilterableProperties() []*property.Property {
	var props []*property.Property
	for _, p := range e.Properties {
		if p.Filterable {
			props = append(props, p)
		}
	}
	return props
}

// EDMX document structure (OData v2 with SAP annotations). Only the parts
// the fuzzer reads are declared.
type edmxDocument struct {
	XMLName      xml.Name     `xml:"Edmx"`
	DataServices dataServices `xml:"DataServices"`
}

type dataServices struct {
	Schemas []schema `xml:"Schema"`
}

type schema struct {
	Namespace   string            `xml:"Namespace,attr"`
	EntityTypes []entityType      `xml:"EntityType"`
	Containers  []entityContainer `xml:"EntityContainer"`
}

type entityType struct {
	Name       string        `xml:"Name,attr"`
	Properties []edmProperty `xml:"Property"`
}

type edmProperty struct {
	Name              string `xml:"Name,attr"`
	Type              string `xml:"Type,attr"`
	MaxLength         string `xml:"MaxLength,attr"`
	Filterable        string `xml:"filterable,attr"`
	FilterRestriction string `xml:"filter-restriction,attr"`
}

type entityContainer struct {
	EntitySets []edmEntitySet `xml:"EntitySet"`
}

type edmEntitySet struct {
	Name           string `xml:"Name,attr"`
	EntityType     string `xml:"EntityType,attr"`
	Searchable     string `xml:"searchable,attr"`
	Topable        string `xml:"topable,attr"`
	Pageable       string `xml:"pageable,attr"`
	RequiresFilter string `xml:"requires-filter,attr"`
}

// ParseFile reads and parses an EDMX document from disk.
func ParseFile(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata document: %w", err)
	}
	return Parse(data)
}

// Parse parses an EDMX document. Entity sets whose entity type cannot be
// resolved are dropped; properties with unsupported EDM types are kept but
// marked non-filterable so the rest of the entity stays usable.
func Parse(data []byte) (*Service, error) {
	var doc edmxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse metadata document: %w", err)
	}

	types := map[string][]*property.Property{}
	for _, sch := range doc.DataServices.Schemas {
		for _, et := range sch.EntityTypes {
			props := make([]*property.Property, 0, len(et.Properties))
			for _, ep := range et.Properties {
				props = append(props, toProperty(ep))
			}
			types[et.Name] = props
			types[sch.Namespace+"."+et.Name] = props
		}
	}

	service := &Service{}
	for _, sch := range doc.DataServices.Schemas {
		for _, container := range sch.Containers {
			for _, es := range container.EntitySets {
				props, ok := types[es.EntityType]
				if !ok {
					continue
				}
				service.EntitySets = append(service.EntitySets, &EntitySet{
					Name:           es.Name,
					EntityTypeName: es.EntityType,
					Searchable:     boolAttr(es.Searchable, false),
					Topable:        boolAttr(es.Topable, true),
					Pageable:       boolAttr(es.Pageable, true),
					RequiresFilter: boolAttr(es.RequiresFilter, false),
					Properties:     props,
				})
			}
		}
	}
	if len(service.EntitySets) == 0 {
		return nil, fmt.Errorf("parse metadata document: %w", ErrNoEntitySets)
	}
	return service, nil
}

func toProperty(ep edmProperty) *property.Property {
	typ := property.TypeFromEdm(ep.Type)
	// MaxLength may carry the literal "Max"; treat anything non-numeric as
	// unbounded and let the generator apply its own cap.
	maxLength, _ := strconv.Atoi(ep.MaxLength)
	return &property.Property{
		Name:              ep.Name,
		Type:              typ,
		Filterable:        typ != property.TypeUnknown && boolAttr(ep.Filterable, true),
		MaxLength:         maxLength,
		FilterRestriction: property.RestrictionFromAnnotation(ep.FilterRestriction),
	}
}

func boolAttr(value string, fallback bool) bool {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}

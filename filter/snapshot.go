package filter

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// graphSnapshot is the serialized form of a graph. The id counter travels
// with the nodes so ids handed out after a restore never collide with ids
// already present in the snapshot.
type graphSnapshot struct {
	Parts    []*Part    `msgpack:"parts"`
	Logicals []*Logical `msgpack:"logicals"`
	Groups   []*Group   `msgpack:"groups"`
	NextID   NodeID     `msgpack:"next_id"`
}

// Snapshot serializes the graph so it can be stored in a corpus and
// restored, possibly mutated, in a later run.
func (g *Graph) Snapshot() ([]byte, error) {
	data, err := msgpack.Marshal(graphSnapshot{
		Parts:    g.parts,
		Logicals: g.logicals,
		Groups:   g.groups,
		NextID:   g.nextID,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot expression graph: %w", err)
	}
	return data, nil
}

// RestoreGraph rebuilds a graph from a snapshot, including the id lookup
// indexes and the id counter.
func RestoreGraph(data []byte) (*Graph, error) {
	var snap graphSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("restore expression graph: %w", err)
	}

	g := NewGraph()
	g.parts = snap.Parts
	g.logicals = snap.Logicals
	g.groups = snap.Groups
	g.nextID = snap.NextID
	for _, part := range g.parts {
		g.partIndex[part.ID] = part
	}
	for _, logical := range g.logicals {
		g.logicalIndex[logical.ID] = logical
	}
	for _, group := range g.groups {
		g.groupIndex[group.ID] = group
	}
	return g, nil
}

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphIDsAreUniqueAndNeverReused(t *testing.T) {
	g := NewGraph()
	seen := map[NodeID]bool{}

	p := g.AddPart()
	l := g.AddLogical("and")
	gr := g.AddGroup()
	for _, id := range []NodeID{p.ID, l.ID, gr.ID} {
		assert.NotZero(t, id)
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}

	g.RemovePart(p.ID)
	p2 := g.AddPart()
	assert.False(t, seen[p2.ID], "id %d reused after removal", p2.ID)
}

func TestGraphLookups(t *testing.T) {
	g := NewGraph()
	p := g.AddPart()
	l := g.AddLogical("or")
	gr := g.AddGroup()

	assert.Equal(t, p, g.PartByID(p.ID))
	assert.Equal(t, l, g.LogicalByID(l.ID))
	assert.Equal(t, gr, g.GroupByID(gr.ID))

	assert.Nil(t, g.PartByID(l.ID), "kind-specific lookup must not cross kinds")
	assert.Nil(t, g.LogicalByID(999))

	assert.True(t, g.Contains(p.ID))
	assert.True(t, g.Contains(l.ID))
	assert.True(t, g.Contains(gr.ID))
	assert.False(t, g.Contains(0))
	assert.False(t, g.Contains(999))
}

func TestGraphLastAccessors(t *testing.T) {
	g := NewGraph()
	assert.Nil(t, g.LastPart())
	assert.Nil(t, g.LastLogical())
	assert.Nil(t, g.LastGroup())

	g.AddPart()
	p2 := g.AddPart()
	assert.Equal(t, p2, g.LastPart())

	l := g.AddLogical("and")
	assert.Equal(t, l, g.LastLogical())
}

func TestGraphRemoveInvalidatesID(t *testing.T) {
	g := NewGraph()
	p1 := g.AddPart()
	p2 := g.AddPart()

	g.RemovePart(p1.ID)
	assert.Nil(t, g.PartByID(p1.ID))
	assert.False(t, g.Contains(p1.ID))
	require.Len(t, g.Parts(), 1)
	assert.Equal(t, p2, g.Parts()[0])

	// Removing twice is a no-op.
	g.RemovePart(p1.ID)
	assert.Len(t, g.Parts(), 1)

	l := g.AddLogical("and")
	g.RemoveLogical(l.ID)
	assert.Empty(t, g.Logicals())

	gr := g.AddGroup()
	g.RemoveGroup(gr.ID)
	assert.Empty(t, g.Groups())
}

func TestReverseLogicals(t *testing.T) {
	g := NewGraph()
	l1 := g.AddLogical("and")
	l2 := g.AddLogical("or")
	l3 := g.AddLogical("and")

	g.ReverseLogicals()
	logicals := g.Logicals()
	require.Len(t, logicals, 3)
	assert.Equal(t, l3, logicals[0])
	assert.Equal(t, l2, logicals[1])
	assert.Equal(t, l1, logicals[2])
}

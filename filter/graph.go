// Package filter implements the filter-expression engine: a bounded-depth
// grammar generator that builds random boolean predicate expressions as a
// graph of typed nodes, and a renderer that reconstructs the canonical
// filter string from that graph at any later point, including after the
// graph has been edited by an external mutation process.
package filter

// NodeID identifies one node of an expression graph. IDs are small handles
// drawn from a per-graph monotonic counter and are never reused, even after
// the node is removed; zero means "no link". Nodes reference each other only
// by id, never by pointer, so external mutation can delete or rewire nodes
// without leaving the graph unsafe to walk.
type NodeID uint32

// Part is a leaf predicate: `property op literal` or `function(...) op
// literal`. LeftID and RightID name the adjacent logical connectives, when
// present.
type Part struct {
	ID       NodeID `msgpack:"id"`
	LeftID   NodeID `msgpack:"left_id"`
	RightID  NodeID `msgpack:"right_id"`
	Name     string `msgpack:"name"`
	Operator string `msgpack:"operator"`
	Operand  string `msgpack:"operand"`

	// Function metadata, set only when the part wraps a built-in call.
	Function       string   `msgpack:"function"`
	FuncProperties []string `msgpack:"func_properties"`
	FuncParams     []string `msgpack:"func_params"`
}

// Logical is a boolean connective joining the nodes named by LeftID and
// RightID. GroupID names the group whose parentheses enclose the connective,
// when any.
type Logical struct {
	ID       NodeID `msgpack:"id"`
	Operator string `msgpack:"operator"`
	LeftID   NodeID `msgpack:"left_id"`
	RightID  NodeID `msgpack:"right_id"`
	GroupID  NodeID `msgpack:"group_id"`
}

// Group is a parenthesized sub-expression. LogicalIDs lists the top-level
// connectives strictly inside the parentheses, in creation order; the list
// is never empty while the group exists.
type Group struct {
	ID         NodeID   `msgpack:"id"`
	LogicalIDs []NodeID `msgpack:"logical_ids"`
	LeftID     NodeID   `msgpack:"left_id"`
	RightID    NodeID   `msgpack:"right_id"`
}

// Graph is the mutable node store of one filter expression. Nodes live in
// per-kind arenas with O(1) id lookup. The generator populates a graph
// append-only during one generation pass; afterwards an external mutation
// process may remove or rewire nodes between fuzzing generations.
//
// A graph must not be mutated while it is being rendered; callers enforce
// single-writer/single-reader discipline.
type Graph struct {
	parts    []*Part
	logicals []*Logical
	groups   []*Group

	partIndex    map[NodeID]*Part
	logicalIndex map[NodeID]*Logical
	groupIndex   map[NodeID]*Group

	nextID NodeID
}

// NewGraph returns an empty expression graph.
func NewGraph() *Graph {
	return &Graph{
		partIndex:    map[NodeID]*Part{},
		logicalIndex: map[NodeID]*Logical{},
		groupIndex:   map[NodeID]*Group{},
	}
}

func (g *Graph) newID() NodeID {
	g.nextID++
	return g.nextID
}

// AddPart appends a new empty part node.
func (g *Graph) AddPart() *Part {
	part := &Part{ID: g.newID()}
	g.parts = append(g.parts, part)
	g.partIndex[part.ID] = part
	return part
}

// AddLogical appends a new connective node with the given operator token.
func (g *Graph) AddLogical(operator string) *Logical {
	logical := &Logical{ID: g.newID(), Operator: operator}
	g.logicals = append(g.logicals, logical)
	g.logicalIndex[logical.ID] = logical
	return logical
}

// AddGroup appends a new empty group node.
func (g *Graph) AddGroup() *Group {
	group := &Group{ID: g.newID()}
	g.groups = append(g.groups, group)
	g.groupIndex[group.ID] = group
	return group
}

// Parts returns the part nodes in creation order.
func (g *Graph) Parts() []*Part { return g.parts }

// Logicals returns the connective nodes in stored order. After generation
// the order is reversed creation order; see ReverseLogicals.
func (g *Graph) Logicals() []*Logical { return g.logicals }

// Groups returns the group nodes in creation order.
func (g *Graph) Groups() []*Group { return g.groups }

// LastPart returns the most recently added part, or nil.
func (g *Graph) LastPart() *Part {
	if len(g.parts) == 0 {
		return nil
	}
	return g.parts[len(g.parts)-1]
}

// LastLogical returns the connective at the end of the stored order, or nil.
func (g *Graph) LastLogical() *Logical {
	if len(g.logicals) == 0 {
		return nil
	}
	return g.logicals[len(g.logicals)-1]
}

// LastGroup returns the most recently added group, or nil.
func (g *Graph) LastGroup() *Group {
	if len(g.groups) == 0 {
		return nil
	}
	return g.groups[len(g.groups)-1]
}

// PartByID resolves a part node, or nil when the id does not name a live
// part.
func (g *Graph) PartByID(id NodeID) *Part { return g.partIndex[id] }

// LogicalByID resolves a connective node, or nil.
func (g *Graph) LogicalByID(id NodeID) *Logical { return g.logicalIndex[id] }

// GroupByID resolves a group node, or nil.
func (g *Graph) GroupByID(id NodeID) *Group { return g.groupIndex[id] }

// Contains reports whether the id names any live node.
func (g *Graph) Contains(id NodeID) bool {
	if _, ok := g.partIndex[id]; ok {
		return true
	}
	if _, ok := g.logicalIndex[id]; ok {
		return true
	}
	_, ok := g.groupIndex[id]
	return ok
}

// ReverseLogicals flips the stored connective order. The generator calls
// this once at the end of a generation pass so the renderer finds the
// outermost connective first.
func (g *Graph) ReverseLogicals() {
	for i, j := 0, len(g.logicals)-1; i < j; i, j = i+1, j-1 {
		g.logicals[i], g.logicals[j] = g.logicals[j], g.logicals[i]
	}
}

// RemovePart deletes a part node. The id becomes permanently invalid; links
// referencing it are left dangling for the renderer to detect.
func (g *Graph) RemovePart(id NodeID) {
	if _, ok := g.partIndex[id]; !ok {
		return
	}
	delete(g.partIndex, id)
	g.parts = removeNode(g.parts, func(p *Part) bool { return p.ID == id })
}

// RemoveLogical deletes a connective node.
func (g *Graph) RemoveLogical(id NodeID) {
	if _, ok := g.logicalIndex[id]; !ok {
		return
	}
	delete(g.logicalIndex, id)
	g.logicals = removeNode(g.logicals, func(l *Logical) bool { return l.ID == id })
}

// RemoveGroup deletes a group node.
func (g *Graph) RemoveGroup(id NodeID) {
	if _, ok := g.groupIndex[id]; !ok {
		return
	}
	delete(g.groupIndex, id)
	g.groups = removeNode(g.groups, func(gr *Group) bool { return gr.ID == id })
}

func removeNode[T any](nodes []*T, match func(*T) bool) []*T {
	for i, node := range nodes {
		if match(node) {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

package filter

import "fmt"

// Builder reconstructs the canonical filter string from an expression
// graph. Rendering is independent of generation order: it starts from the
// outermost connective and walks the id links outward, so a graph edited by
// an external mutation process still renders correctly as long as every
// link resolves. A dangling link fails with ErrUnrenderable instead of
// silently dropping expression pieces.
//
// The result is memoized per Builder; rendering the same unmutated graph
// through a fresh Builder yields an identical string.
type Builder struct {
	graph    *Graph
	used     map[NodeID]struct{}
	rendered string
	err      error
	built    bool
}

// NewBuilder returns a renderer for the graph.
func NewBuilder(graph *Graph) *Builder {
	return &Builder{graph: graph}
}

// Render is a convenience wrapper building the graph through a one-shot
// Builder.
func Render(graph *Graph) (string, error) {
	return NewBuilder(graph).Build()
}

// Build renders the graph. Repeated calls return the memoized result.
func (b *Builder) Build() (string, error) {
	if b.built {
		return b.rendered, b.err
	}
	b.built = true
	b.used = map[NodeID]struct{}{}
	b.rendered, b.err = b.build()
	if b.err != nil {
		b.rendered = ""
	}
	return b.rendered, b.err
}

func (b *Builder) build() (string, error) {
	parts := b.graph.Parts()
	logicals := b.graph.Logicals()

	if len(parts) == 0 {
		return "", fmt.Errorf("%w: graph has no parts", ErrUnrenderable)
	}
	if len(parts) == 1 {
		return renderPart(parts[0]), nil
	}
	if len(logicals) == 0 {
		return "", fmt.Errorf("%w: %d parts but no connectives", ErrUnrenderable, len(parts))
	}
	return b.buildAll(logicals[0])
}

// buildAll renders outward from the structurally outermost connective, then
// applies the leftover-connective repair for partially mutated graphs.
func (b *Builder) buildAll(first *Logical) (string, error) {
	var rendered string
	if first.GroupID != 0 {
		s, err := b.buildFirstGroup(first.GroupID)
		if err != nil {
			return "", err
		}
		rendered = s
	} else {
		if err := b.consume(first); err != nil {
			return "", err
		}
		left, err := b.buildLeft(first)
		if err != nil {
			return "", err
		}
		right, err := b.buildRight(first)
		if err != nil {
			return "", err
		}
		rendered = left + " " + first.Operator + " " + right
	}
	return b.checkLastLogical(rendered)
}

// buildFirstGroup renders a group that encloses the outermost connective,
// then any connectives attached outside its parentheses.
func (b *Builder) buildFirstGroup(groupID NodeID) (string, error) {
	group := b.graph.GroupByID(groupID)
	if group == nil {
		return "", fmt.Errorf("%w: group %d does not exist", ErrUnrenderable, groupID)
	}
	rendered, err := b.buildGroup(group)
	if err != nil {
		return "", err
	}
	rendered, err = b.buildSurroundings(true, group.LeftID, 0, rendered)
	if err != nil {
		return "", err
	}
	return b.buildSurroundings(false, 0, group.RightID, rendered)
}

// buildLeft renders everything left of the connective.
func (b *Builder) buildLeft(logical *Logical) (string, error) {
	if logical.LeftID == 0 {
		return "", fmt.Errorf("%w: connective %d has no left neighbor", ErrUnrenderable, logical.ID)
	}
	return b.buildByID(logical.LeftID, true)
}

// buildRight renders everything right of the connective.
func (b *Builder) buildRight(logical *Logical) (string, error) {
	if logical.RightID == 0 {
		return "", fmt.Errorf("%w: connective %d has no right neighbor", ErrUnrenderable, logical.ID)
	}
	return b.buildByID(logical.RightID, false)
}

// buildByID renders the part or group named by id, extended by whatever
// hangs off it on the walk's outward side.
func (b *Builder) buildByID(id NodeID, skipLeft bool) (string, error) {
	if part := b.graph.PartByID(id); part != nil {
		return b.buildSurroundings(skipLeft, part.LeftID, part.RightID, renderPart(part))
	}
	if group := b.graph.GroupByID(id); group != nil {
		rendered, err := b.buildGroup(group)
		if err != nil {
			return "", err
		}
		return b.buildSurroundings(skipLeft, group.LeftID, group.RightID, rendered)
	}
	return "", fmt.Errorf("%w: node %d does not exist", ErrUnrenderable, id)
}

// buildSurroundings extends a rendered node with the connective chain on
// the walk's outward side: further left when walking left, further right
// when walking right.
func (b *Builder) buildSurroundings(skipLeft bool, leftID, rightID NodeID, rendered string) (string, error) {
	if skipLeft && leftID != 0 {
		logical := b.graph.LogicalByID(leftID)
		if logical == nil {
			return "", fmt.Errorf("%w: connective %d does not exist", ErrUnrenderable, leftID)
		}
		if err := b.consume(logical); err != nil {
			return "", err
		}
		left, err := b.buildLeft(logical)
		if err != nil {
			return "", err
		}
		rendered = left + " " + logical.Operator + " " + rendered
	}
	if !skipLeft && rightID != 0 {
		logical := b.graph.LogicalByID(rightID)
		if logical == nil {
			return "", fmt.Errorf("%w: connective %d does not exist", ErrUnrenderable, rightID)
		}
		if err := b.consume(logical); err != nil {
			return "", err
		}
		right, err := b.buildRight(logical)
		if err != nil {
			return "", err
		}
		rendered = rendered + " " + logical.Operator + " " + right
	}
	return rendered, nil
}

// buildGroup renders a group from its first member connective.
func (b *Builder) buildGroup(group *Group) (string, error) {
	if len(group.LogicalIDs) == 0 {
		return "", fmt.Errorf("%w: group %d has no member connectives", ErrUnrenderable, group.ID)
	}
	logical := b.graph.LogicalByID(group.LogicalIDs[0])
	if logical == nil {
		return "", fmt.Errorf("%w: connective %d does not exist", ErrUnrenderable, group.LogicalIDs[0])
	}
	if err := b.consume(logical); err != nil {
		return "", err
	}
	left, err := b.buildLeft(logical)
	if err != nil {
		return "", err
	}
	right, err := b.buildRight(logical)
	if err != nil {
		return "", err
	}
	return "(" + left + " " + logical.Operator + " " + right + ")", nil
}

// checkLastLogical repairs graphs whose structurally last connective was
// never reached by the outward walk. That happens only after external
// mutation detached it from the identified root: the built string is
// parenthesized and joined to the leftover connective's left branch.
func (b *Builder) checkLastLogical(rendered string) (string, error) {
	last := b.graph.LastLogical()
	if last == nil {
		return rendered, nil
	}
	if _, ok := b.used[last.ID]; ok {
		return rendered, nil
	}
	b.used[last.ID] = struct{}{}
	left, err := b.buildLeft(last)
	if err != nil {
		return "", err
	}
	return left + " " + last.Operator + " (" + rendered + ")", nil
}

// consume marks a connective as rendered. Visiting the same connective
// twice means mutation introduced a cycle; rendering fails rather than
// looping.
func (b *Builder) consume(logical *Logical) error {
	if _, ok := b.used[logical.ID]; ok {
		return fmt.Errorf("%w: connective %d visited twice", ErrUnrenderable, logical.ID)
	}
	b.used[logical.ID] = struct{}{}
	return nil
}

func renderPart(part *Part) string {
	return part.Name + " " + part.Operator + " " + part.Operand
}

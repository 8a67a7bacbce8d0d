package filter

// groupStack tracks the currently open groups during one generation pass so
// a new connective can register with the group whose parentheses enclose it.
// Generation-time only; the stack is empty once generation finishes.
type groupStack struct {
	groups []*Group
}

func (s *groupStack) push(group *Group) {
	s.groups = append(s.groups, group)
}

// top returns the innermost open group without removing it, or nil.
func (s *groupStack) top() *Group {
	if len(s.groups) == 0 {
		return nil
	}
	return s.groups[len(s.groups)-1]
}

// pop removes n groups and returns the last one removed (the outermost of
// the popped run), or nil when the stack empties first.
func (s *groupStack) pop(n int) *Group {
	var popped *Group
	for i := 0; i < n; i++ {
		if len(s.groups) == 0 {
			return popped
		}
		popped = s.groups[len(s.groups)-1]
		s.groups = s.groups[:len(s.groups)-1]
	}
	return popped
}

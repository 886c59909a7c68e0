package syntaxtree

type TraversalAction int

const (
	ContinueTraversal TraversalAction = iota
	Prune
	StopTraversal
)

// NodeHandler is called before (after == false) and after (after == true) the children of a node are visited.
// ancestorChain goes from the root to the parent of the node and should not be retained.
type NodeHandler = func(id NodeID, ancestorChain []NodeID, after bool) (TraversalAction, error)

type walkFrame struct {
	id         NodeID
	childIndex int
}

// Walk traverses the subtree rooted at start in depth-first order. The traversal uses an explicit
// stack so very deep trees do not grow the goroutine stack.
func (t *Tree) Walk(start NodeID, handle, postHandle NodeHandler) error {
	ancestorChain := t.Ancestors(start)
	baseDepth := len(ancestorChain)
	stack := []walkFrame{{id: start, childIndex: -1}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		chain := ancestorChain[:baseDepth+len(stack)-1]

		if top.childIndex < 0 {
			top.childIndex = 0
			if handle != nil {
				action, err := handle(top.id, chain, false)
				if err != nil {
					return err
				}
				switch action {
				case StopTraversal:
					return nil
				case Prune:
					top.childIndex = len(t.nodes[top.id].Children)
				}
			}
		}

		children := t.nodes[top.id].Children
		if top.childIndex < len(children) {
			child := children[top.childIndex]
			top.childIndex++

			ancestorChain = append(ancestorChain[:baseDepth+len(stack)-1], top.id)
			stack = append(stack, walkFrame{id: child, childIndex: -1})
			continue
		}

		if postHandle != nil {
			action, err := postHandle(top.id, chain, true)
			if err != nil {
				return err
			}
			if action == StopTraversal {
				return nil
			}
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}

// FindNodeAt returns the deepest node whose span contains the cursor (end included), when several
// siblings contain the cursor the first one is chosen. If the cursor is outside the root span the root
// is returned and ok is false.
func (t *Tree) FindNodeAt(cursor int32) (id NodeID, ok bool) {
	current := t.Root()
	if !t.nodes[current].Span.HasPositionEndIncluded(cursor) {
		return current, false
	}

loop:
	for {
		for _, child := range t.nodes[current].Children {
			if t.nodes[child].Span.HasPositionEndIncluded(cursor) {
				current = child
				continue loop
			}
		}
		return current, true
	}
}

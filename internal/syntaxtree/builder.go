package syntaxtree

import (
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

type NodeOption func(n *Node)

func WithName(name string) NodeOption {
	return func(n *Node) {
		n.Name = name
	}
}

func WithTokens(tokens ...Token) NodeOption {
	return func(n *Node) {
		n.Tokens = append(n.Tokens, tokens...)
	}
}

// A Builder creates a Tree, the first added node is the root. Errors are recorded and
// returned by Build, after an error Add calls are ignored.
type Builder struct {
	nodes []Node
	err   error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a node and returns its id, parent should be NoNode for the root.
func (b *Builder) Add(parent NodeID, kind NodeKind, span NodeSpan, opts ...NodeOption) NodeID {
	if b.err != nil {
		return NoNode
	}

	id := NodeID(len(b.nodes))

	switch {
	case !kind.IsValid():
		b.err = fmt.Errorf("%w: %d", ErrInvalidNodeKind, kind)
	case parent == NoNode && id != 0:
		b.err = ErrMultipleRoots
	case parent != NoNode && (parent < 0 || parent >= id):
		b.err = fmt.Errorf("%w: %d", ErrInvalidParent, parent)
	case parent != NoNode && !span.IncludedIn(b.nodes[parent].Span):
		b.err = fmt.Errorf("%w: %s node %v, parent %v", ErrSpanNotInParent, kind, span, b.nodes[parent].Span)
	}

	if b.err != nil {
		return NoNode
	}

	node := Node{
		Kind:   kind,
		Span:   span,
		Parent: parent,
	}
	for _, opt := range opts {
		opt(&node)
	}

	b.nodes = append(b.nodes, node)
	if parent != NoNode {
		b.nodes[parent].Children = append(b.nodes[parent].Children, id)
	}
	return id
}

// Build returns the tree, document can be nil. The builder should not be used afterwards.
func (b *Builder) Build(document *sourcecode.Document) (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.nodes) == 0 {
		return nil, ErrNoRoot
	}

	tree := &Tree{
		nodes:    b.nodes,
		document: document,
	}
	b.nodes = nil
	return tree, nil
}

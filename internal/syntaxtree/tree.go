package syntaxtree

import (
	"errors"
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

type NodeSpan = sourcecode.NodeSpan

// NodeID is the index of a node in the arena of its Tree.
type NodeID int32

const NoNode NodeID = -1

var (
	ErrNoRoot          = errors.New("tree has no root node")
	ErrMultipleRoots   = errors.New("tree has more than one root node")
	ErrInvalidParent   = errors.New("invalid parent node")
	ErrInvalidNodeKind = errors.New("invalid node kind")
	ErrSpanNotInParent = errors.New("node span is not included in the span of its parent")
)

// A Node is an immutable syntax node. Children are owned by the Tree (arena), Parent is a plain
// index and never an owner. Nodes are only created by a Builder, a parent is always created before
// its children so Parent < ID for every non-root node.
type Node struct {
	Kind     NodeKind
	Span     NodeSpan
	Parent   NodeID //NoNode for the module root
	Children []NodeID
	Name     string //identifier-like payload: declared name, referenced name, module path ...
	Tokens   []Token
}

func (n Node) IsRoot() bool {
	return n.Parent == NoNode
}

// Token returns the first token of type tokenType, missing tokens included.
func (n Node) Token(tokenType TokenType) (Token, bool) {
	for _, token := range n.Tokens {
		if token.Type == tokenType {
			return token, true
		}
	}
	return Token{}, false
}

// HasPresentToken reports whether the node has a non-missing token of type tokenType.
func (n Node) HasPresentToken(tokenType TokenType) bool {
	token, ok := n.Token(tokenType)
	return ok && !token.Missing
}

// A Tree is an immutable arena of nodes, the root has the ID 0. A Tree is safe for concurrent reads.
type Tree struct {
	nodes    []Node
	document *sourcecode.Document //can be nil
}

func (t *Tree) Root() NodeID {
	return 0
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) IsValid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node with the given id, its Children and Tokens slices should NOT be modified.
func (t *Tree) Node(id NodeID) Node {
	if !t.IsValid(id) {
		panic(fmt.Errorf("invalid node id %d", id))
	}
	return t.nodes[id]
}

func (t *Tree) Kind(id NodeID) NodeKind {
	return t.Node(id).Kind
}

func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	parent := t.Node(id).Parent
	return parent, parent != NoNode
}

// Children returns the children of a node, the result should NOT be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.Node(id).Children
}

// Document returns the source document, it can be nil.
func (t *Tree) Document() *sourcecode.Document {
	return t.document
}

// Text returns the source text of a node, or an empty string if the tree has no document.
func (t *Tree) Text(id NodeID) string {
	if t.document == nil {
		return ""
	}
	span := t.Node(id).Span
	text := t.document.Text()
	start := max(0, min(int(span.Start), len(text)))
	end := max(start, min(int(span.End), len(text)))
	return text[start:end]
}

// Ancestors returns the ancestor chain of a node, from the root to the parent of the node.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for parent, ok := t.Parent(id); ok; parent, ok = t.Parent(parent) {
		chain = append(chain, parent)
	}
	//reverse
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for parent, ok := t.Parent(id); ok; parent, ok = t.Parent(parent) {
		depth++
	}
	return depth
}

func (t *Tree) ChildrenOfKind(id NodeID, kind NodeKind) []NodeID {
	var result []NodeID
	for _, child := range t.Children(id) {
		if t.nodes[child].Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (t *Tree) FirstChildOfKind(id NodeID, kind NodeKind) (NodeID, bool) {
	for _, child := range t.Children(id) {
		if t.nodes[child].Kind == kind {
			return child, true
		}
	}
	return NoNode, false
}

// FindClosest searches for the closest ancestor of kind kind, starting from the parent of id.
func (t *Tree) FindClosest(id NodeID, kind NodeKind) (NodeID, bool) {
	for parent, ok := t.Parent(id); ok; parent, ok = t.Parent(parent) {
		if t.nodes[parent].Kind == kind {
			return parent, true
		}
	}
	return NoNode, false
}

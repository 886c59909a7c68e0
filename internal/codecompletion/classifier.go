package codecompletion

import (
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// A Classification is the grammatical context of a cursor.
type Classification struct {
	NodeAtCursor syntaxtree.NodeID //deepest node whose span contains the cursor

	//node the provider is dispatched on: the node at cursor or its closest ancestor having a provider.
	Node     syntaxtree.NodeID
	Provider Provider
}

// Classify finds the deepest node containing the cursor and walks its ancestor chain upward until a
// node whose kind has a provider is found. ok is false if the cursor is outside the tree or if no
// node of the chain has a provider.
func Classify(tree *syntaxtree.Tree, registry *Registry, cursor int32) (classification Classification, ok bool) {
	nodeAtCursor, found := tree.FindNodeAt(cursor)
	if !found {
		return Classification{}, false
	}

	for node, hasParent := nodeAtCursor, true; hasParent; node, hasParent = tree.Parent(node) {
		provider, ok := registry.Dispatch(tree.Kind(node))
		if ok {
			return Classification{
				NodeAtCursor: nodeAtCursor,
				Node:         node,
				Provider:     provider,
			}, true
		}
	}

	return Classification{}, false
}

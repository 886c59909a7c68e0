package syntaxtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

// source:
//
//	function f() {
//	    int x = g();
//	}
func buildSampleTree(t *testing.T) (*Tree, map[string]NodeID) {
	src := "function f() {\n    int x = g();\n}"
	b := NewBuilder()
	ids := map[string]NodeID{}

	ids["module"] = b.Add(NoNode, ModulePart, NodeSpan{Start: 0, End: 32})
	ids["fn"] = b.Add(ids["module"], FunctionDefinition, NodeSpan{Start: 0, End: 32}, WithName("f"),
		WithTokens(Token{Type: FUNCTION_KEYWORD, Span: NodeSpan{Start: 0, End: 8}}))
	ids["body"] = b.Add(ids["fn"], FunctionBodyBlock, NodeSpan{Start: 13, End: 32})
	ids["decl"] = b.Add(ids["body"], VariableDeclaration, NodeSpan{Start: 19, End: 30}, WithName("x"))
	ids["type"] = b.Add(ids["decl"], TypeDescriptor, NodeSpan{Start: 19, End: 22}, WithName("int"))
	ids["call"] = b.Add(ids["decl"], FunctionCall, NodeSpan{Start: 27, End: 30}, WithName("g"))

	tree, err := b.Build(sourcecode.NewDocument("main.bal", src))
	require.NoError(t, err)
	return tree, ids
}

func TestTreeAccessors(t *testing.T) {
	tree, ids := buildSampleTree(t)

	assert.Equal(t, 6, tree.Len())
	assert.Equal(t, ids["module"], tree.Root())
	assert.True(t, tree.Node(tree.Root()).IsRoot())

	parent, ok := tree.Parent(ids["decl"])
	assert.True(t, ok)
	assert.Equal(t, ids["body"], parent)

	_, ok = tree.Parent(tree.Root())
	assert.False(t, ok)

	assert.Equal(t, []NodeID{ids["module"], ids["fn"], ids["body"]}, tree.Ancestors(ids["decl"]))
	assert.Empty(t, tree.Ancestors(tree.Root()))
	assert.Equal(t, 3, tree.Depth(ids["decl"]))

	assert.Equal(t, []NodeID{ids["type"], ids["call"]}, tree.Children(ids["decl"]))
	assert.Equal(t, []NodeID{ids["call"]}, tree.ChildrenOfKind(ids["decl"], FunctionCall))

	child, ok := tree.FirstChildOfKind(ids["decl"], TypeDescriptor)
	assert.True(t, ok)
	assert.Equal(t, ids["type"], child)

	fn, ok := tree.FindClosest(ids["call"], FunctionDefinition)
	assert.True(t, ok)
	assert.Equal(t, ids["fn"], fn)

	_, ok = tree.FindClosest(ids["call"], BlockStatement)
	assert.False(t, ok)

	assert.Equal(t, "int", tree.Text(ids["type"]))
	assert.Equal(t, "g()", tree.Text(ids["call"]))

	assert.True(t, tree.Node(ids["fn"]).HasPresentToken(FUNCTION_KEYWORD))
	assert.False(t, tree.Node(ids["fn"]).HasPresentToken(RETURNS_KEYWORD))

	assert.Panics(t, func() {
		tree.Node(NodeID(100))
	})
}

func TestParentIDIsAlwaysLowerThanChildID(t *testing.T) {
	tree, _ := buildSampleTree(t)

	for id := NodeID(1); int(id) < tree.Len(); id++ {
		parent, ok := tree.Parent(id)
		require.True(t, ok)
		assert.Less(t, parent, id)
	}
}

func TestBuilderErrors(t *testing.T) {
	t.Run("no root", func(t *testing.T) {
		_, err := NewBuilder().Build(nil)
		assert.ErrorIs(t, err, ErrNoRoot)
	})

	t.Run("two roots", func(t *testing.T) {
		b := NewBuilder()
		b.Add(NoNode, ModulePart, NodeSpan{End: 10})
		assert.Equal(t, NoNode, b.Add(NoNode, ModulePart, NodeSpan{End: 10}))
		_, err := b.Build(nil)
		assert.ErrorIs(t, err, ErrMultipleRoots)
	})

	t.Run("invalid parent", func(t *testing.T) {
		b := NewBuilder()
		b.Add(NoNode, ModulePart, NodeSpan{End: 10})
		b.Add(5, BlockStatement, NodeSpan{End: 10})
		_, err := b.Build(nil)
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("span not in parent", func(t *testing.T) {
		b := NewBuilder()
		b.Add(NoNode, ModulePart, NodeSpan{End: 10})
		b.Add(0, BlockStatement, NodeSpan{Start: 5, End: 11})
		_, err := b.Build(nil)
		assert.ErrorIs(t, err, ErrSpanNotInParent)
	})

	t.Run("invalid kind", func(t *testing.T) {
		b := NewBuilder()
		b.Add(NoNode, UnspecifiedNodeKind, NodeSpan{End: 10})
		_, err := b.Build(nil)
		assert.ErrorIs(t, err, ErrInvalidNodeKind)
	})
}

func TestWalk(t *testing.T) {
	tree, ids := buildSampleTree(t)

	t.Run("pre and post order", func(t *testing.T) {
		var pre, post []NodeID
		var chains [][]NodeID

		err := tree.Walk(tree.Root(), func(id NodeID, ancestorChain []NodeID, after bool) (TraversalAction, error) {
			pre = append(pre, id)
			chains = append(chains, append([]NodeID(nil), ancestorChain...))
			return ContinueTraversal, nil
		}, func(id NodeID, ancestorChain []NodeID, after bool) (TraversalAction, error) {
			assert.True(t, after)
			post = append(post, id)
			return ContinueTraversal, nil
		})

		require.NoError(t, err)
		assert.Equal(t, []NodeID{ids["module"], ids["fn"], ids["body"], ids["decl"], ids["type"], ids["call"]}, pre)
		assert.Equal(t, []NodeID{ids["type"], ids["call"], ids["decl"], ids["body"], ids["fn"], ids["module"]}, post)

		for i, id := range pre {
			assert.Equal(t, tree.Ancestors(id), chains[i], "ancestor chain of node %d", id)
		}
	})

	t.Run("prune", func(t *testing.T) {
		var visited []NodeID
		err := tree.Walk(tree.Root(), func(id NodeID, _ []NodeID, _ bool) (TraversalAction, error) {
			visited = append(visited, id)
			if id == ids["decl"] {
				return Prune, nil
			}
			return ContinueTraversal, nil
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []NodeID{ids["module"], ids["fn"], ids["body"], ids["decl"]}, visited)
	})

	t.Run("stop", func(t *testing.T) {
		count := 0
		err := tree.Walk(tree.Root(), func(id NodeID, _ []NodeID, _ bool) (TraversalAction, error) {
			count++
			if id == ids["body"] {
				return StopTraversal, nil
			}
			return ContinueTraversal, nil
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("error", func(t *testing.T) {
		expectedErr := errors.New("error")
		err := tree.Walk(tree.Root(), func(id NodeID, _ []NodeID, _ bool) (TraversalAction, error) {
			return ContinueTraversal, expectedErr
		}, nil)
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("subtree", func(t *testing.T) {
		var chainOfType []NodeID
		err := tree.Walk(ids["decl"], func(id NodeID, ancestorChain []NodeID, _ bool) (TraversalAction, error) {
			if id == ids["type"] {
				chainOfType = append(chainOfType, ancestorChain...)
			}
			return ContinueTraversal, nil
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, tree.Ancestors(ids["type"]), chainOfType)
	})
}

func TestWalkDeepTree(t *testing.T) {
	const depth = 100_000

	b := NewBuilder()
	parent := b.Add(NoNode, ModulePart, NodeSpan{End: 1})
	for i := 0; i < depth; i++ {
		parent = b.Add(parent, BlockStatement, NodeSpan{End: 1})
	}
	tree, err := b.Build(nil)
	require.NoError(t, err)

	count := 0
	err = tree.Walk(tree.Root(), func(id NodeID, _ []NodeID, _ bool) (TraversalAction, error) {
		count++
		return ContinueTraversal, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, depth+1, count)
}

func TestFindNodeAt(t *testing.T) {
	tree, ids := buildSampleTree(t)

	id, ok := tree.FindNodeAt(20)
	assert.True(t, ok)
	assert.Equal(t, ids["type"], id)

	//end included
	id, ok = tree.FindNodeAt(30)
	assert.True(t, ok)
	assert.Equal(t, ids["call"], id)

	id, ok = tree.FindNodeAt(16)
	assert.True(t, ok)
	assert.Equal(t, ids["body"], id)

	id, ok = tree.FindNodeAt(100)
	assert.False(t, ok)
	assert.Equal(t, tree.Root(), id)
}

func TestNodeKinds(t *testing.T) {
	for _, kind := range AllNodeKinds() {
		parsed, err := ParseNodeKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseNodeKind("Unspecified")
	assert.Error(t, err)

	assert.True(t, ModulePart.IsScopeContainer())
	assert.True(t, FunctionBodyBlock.IsScopeContainer())
	assert.True(t, BlockStatement.IsScopeContainer())
	assert.False(t, FunctionCall.IsScopeContainer())
	assert.Equal(t, "NodeKind(200)", NodeKind(200).String())
}

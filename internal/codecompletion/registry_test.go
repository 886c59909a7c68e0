package codecompletion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

func TestRegistry(t *testing.T) {
	t.Run("default providers", func(t *testing.T) {
		registry, err := NewDefaultRegistry()
		require.NoError(t, err)

		assert.Equal(t, []syntaxtree.NodeKind{
			syntaxtree.ImportDeclaration,
			syntaxtree.NamespaceDeclaration,
			syntaxtree.FunctionBodyBlock,
			syntaxtree.BlockStatement,
			syntaxtree.FunctionCall,
			syntaxtree.SimpleNameReference,
			syntaxtree.TypeDescriptor,
		}, registry.Kinds())

		provider, ok := registry.Dispatch(syntaxtree.NamespaceDeclaration)
		assert.True(t, ok)
		assert.IsType(t, NamespaceDeclarationProvider{}, provider)
	})

	t.Run("dispatch on a kind without provider", func(t *testing.T) {
		registry, err := NewRegistry(NamespaceDeclarationProvider{})
		require.NoError(t, err)

		provider, ok := registry.Dispatch(syntaxtree.Literal)
		assert.False(t, ok)
		assert.Nil(t, provider)
	})

	t.Run("duplicate provider", func(t *testing.T) {
		_, err := NewRegistry(NamespaceDeclarationProvider{}, NamespaceDeclarationProvider{})
		assert.ErrorIs(t, err, ErrDuplicateProvider)

		_, err = NewDefaultRegistry(NewBlockProvider(syntaxtree.BlockStatement))
		assert.ErrorIs(t, err, ErrDuplicateProvider)
	})

	t.Run("additional provider", func(t *testing.T) {
		registry, err := NewDefaultRegistry(failingProvider{kind: syntaxtree.Literal})
		require.NoError(t, err)
		assert.Equal(t, 8, registry.Len())
	})

	t.Run("invalid provider", func(t *testing.T) {
		_, err := NewRegistry(nil)
		assert.ErrorIs(t, err, ErrNilProvider)

		_, err = NewRegistry(failingProvider{kind: 200})
		assert.ErrorIs(t, err, syntaxtree.ErrInvalidNodeKind)
	})
}

func TestClassify(t *testing.T) {
	f := newFixture(t)
	registry, err := NewDefaultRegistry()
	require.NoError(t, err)

	testCases := []struct {
		name         string
		cursor       int32
		nodeAtCursor string
		node         string
	}{
		{"name reference", 121, "ref-na", "ref-na"},
		{"literal", 130, "literal", "block"},
		{"block", 125, "block", "block"},
		{"function body", 250, "body", "body"},
		{"call", 141, "call-greet", "call-greet"},
		{"type descriptor", 71, "type-per", "type-per"},
		{"variable declaration", 75, "var-p", "body"},
		{"function definition", 55, "main", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			classification, ok := Classify(f.tree, registry, testCase.cursor)
			if testCase.node == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, f.nodes[testCase.nodeAtCursor], classification.NodeAtCursor)
			assert.Equal(t, f.nodes[testCase.node], classification.Node)
			assert.Equal(t, f.tree.Kind(classification.Node), classification.Provider.Kind())
		})
	}
}

package syntaxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTree(t *testing.T) {
	data := []byte(`{
		"name": "main.bal",
		"source": "xmlns \"urn:a\" as a;\nimport abc/mod1;",
		"root": {
			"kind": "ModulePart",
			"span": {"start": 0, "end": 36},
			"children": [
				{
					"kind": "NamespaceDeclaration",
					"span": {"start": 0, "end": 19},
					"name": "a",
					"tokens": [{"type": "XMLNS_KEYWORD", "span": {"start": 0, "end": 5}}]
				},
				{
					"kind": "ImportDeclaration",
					"span": {"start": 20, "end": 36},
					"name": "abc/mod1",
					"children": [
						{"kind": "QualifiedNameReference", "span": {"start": 27, "end": 35}, "name": "abc/mod1"}
					]
				}
			]
		}
	}`)

	tree, err := DecodeTree(data)
	require.NoError(t, err)

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, ModulePart, tree.Kind(0))
	assert.Equal(t, NamespaceDeclaration, tree.Kind(1))
	assert.Equal(t, ImportDeclaration, tree.Kind(2))
	assert.Equal(t, QualifiedNameReference, tree.Kind(3))
	assert.True(t, tree.Node(1).HasPresentToken(XMLNS_KEYWORD))
	assert.Equal(t, "abc/mod1", tree.Node(2).Name)
	assert.Equal(t, "main.bal", tree.Document().Name())
	assert.Equal(t, "import abc/mod1;", tree.Text(2))

	t.Run("unknown kind", func(t *testing.T) {
		_, err := DecodeTree([]byte(`{"root": {"kind": "Foo", "span": {"start": 0, "end": 1}}}`))
		assert.Error(t, err)
	})

	t.Run("no root", func(t *testing.T) {
		_, err := DecodeTree([]byte(`{"name": "x"}`))
		assert.ErrorIs(t, err, ErrNoRoot)
	})
}

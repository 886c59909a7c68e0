package semantic

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// A ModelDocument is the JSON representation of the semantic data of a tree, nodes are referenced
// by their ID (see syntaxtree.DecodeTree).
type ModelDocument struct {
	Scopes  []ScopeDocument    `json:"scopes"`
	Types   []NodeTypeDocument `json:"types"`
	Modules []ModuleInfo       `json:"modules"`
}

type ScopeDocument struct {
	Node    syntaxtree.NodeID `json:"node"`
	Symbols []SymbolEntry     `json:"symbols"`
}

type NodeTypeDocument struct {
	Node syntaxtree.NodeID `json:"node"`
	Type string            `json:"type"`
}

func DecodeModel(data []byte, tree *syntaxtree.Tree) (*Data, error) {
	var doc ModelDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode semantic model document: %w", err)
	}
	return doc.Build(tree)
}

func (doc ModelDocument) Build(tree *syntaxtree.Tree) (*Data, error) {
	data := NewData(tree)

	//declare outer scopes first: a parent always has a lower ID than its children.
	scopes := slices.Clone(doc.Scopes)
	slices.SortFunc(scopes, func(a, b ScopeDocument) int {
		return cmp.Compare(a.Node, b.Node)
	})

	for _, scope := range scopes {
		if _, err := data.DeclareScope(scope.Node, scope.Symbols...); err != nil {
			return nil, err
		}
	}

	for _, nodeType := range doc.Types {
		if err := data.SetNodeType(nodeType.Node, nodeType.Type); err != nil {
			return nil, err
		}
	}

	for _, module := range doc.Modules {
		if err := data.AddModule(module); err != nil {
			return nil, err
		}
	}
	return data, nil
}

package syntaxtree

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

// A TreeDocument is the JSON representation of a syntax tree produced by an external parser.
type TreeDocument struct {
	Name   string        `json:"name"`
	Source string        `json:"source"`
	Root   *NodeDocument `json:"root"`
}

type NodeDocument struct {
	Kind     NodeKind        `json:"kind"`
	Span     NodeSpan        `json:"span"`
	Name     string          `json:"name,omitempty"`
	Tokens   []Token         `json:"tokens,omitempty"`
	Children []*NodeDocument `json:"children,omitempty"`
}

// DecodeTree decodes a JSON tree document and builds the tree. Node IDs are assigned in depth-first
// pre-order: the root is 0, its first child is 1, ...
func DecodeTree(data []byte) (*Tree, error) {
	var doc TreeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode tree document: %w", err)
	}
	return doc.Build()
}

func (d TreeDocument) Build() (*Tree, error) {
	if d.Root == nil {
		return nil, ErrNoRoot
	}

	type pending struct {
		node   *NodeDocument
		parent NodeID
	}

	builder := NewBuilder()
	stack := []pending{{node: d.Root, parent: NoNode}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.node == nil {
			return nil, fmt.Errorf("null node in tree document %q", d.Name)
		}

		id := builder.Add(item.parent, item.node.Kind, item.node.Span, WithName(item.node.Name), WithTokens(item.node.Tokens...))
		if id == NoNode {
			break
		}

		//push in reverse order so that the first child is built first.
		for i := len(item.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{node: item.node.Children[i], parent: id})
		}
	}

	var document *sourcecode.Document
	if d.Source != "" || d.Name != "" {
		document = sourcecode.NewDocument(d.Name, d.Source)
	}
	return builder.Build(document)
}

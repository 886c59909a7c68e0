package codecompletion

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// A BlockProvider suggests the statement snippets and the symbols visible from a block. It is
// registered once per block kind (function body, block statement).
type BlockProvider struct {
	kind syntaxtree.NodeKind
}

func NewBlockProvider(kind syntaxtree.NodeKind) BlockProvider {
	return BlockProvider{kind: kind}
}

func (p BlockProvider) Kind() syntaxtree.NodeKind {
	return p.kind
}

func (p BlockProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	var items []Item

	for _, statement := range req.Snippets.Statements {
		items = append(items, Item{
			Label:            statement.Label,
			InsertText:       statement.Snippet,
			InsertTextFormat: SnippetFormat,
			Kind:             SnippetItem,
			Detail:           statement.Detail,
			Priority:         KEYWORD_PRIORITY,
		})
	}

	symbols, err := req.Resolver.VisibleSymbols(ctx, node, req.Context.Cursor)
	if err != nil {
		return nil, err
	}

	for _, symbol := range symbols {
		item, err := symbolItem(ctx, req, symbol)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

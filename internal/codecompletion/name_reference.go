package codecompletion

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/scoperesolver"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
	"github.com/inoxlang/ctxcompletion/internal/utils"
)

// SimpleNameReferenceProvider suggests the visible symbols whose name starts with the part of the
// reference located before the cursor.
type SimpleNameReferenceProvider struct{}

func (SimpleNameReferenceProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.SimpleNameReference
}

func (SimpleNameReferenceProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	prefix := req.NamePrefix(node)

	symbols, err := req.Resolver.VisibleSymbols(ctx, node, req.Tree().Node(node).Span.Start)
	if err != nil {
		return nil, err
	}

	symbols = utils.FilterSlice(symbols, func(symbol scoperesolver.VisibleSymbol) bool {
		return hasPrefix(symbol.Entry.Name, prefix)
	})

	items := make([]Item, 0, len(symbols))

	//the detail is rendered from the visible binding: resolving the name again could find a binding
	//declared after the cursor.
	for _, symbol := range symbols {
		item, err := symbolItem(ctx, req, symbol)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

package codecompletion

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// NamespaceDeclarationProvider suggests the xmlns keyword snippet when the keyword of a namespace
// declaration is missing (parser recovery).
type NamespaceDeclarationProvider struct{}

func (NamespaceDeclarationProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.NamespaceDeclaration
}

func (NamespaceDeclarationProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	if req.Tree().Node(node).HasPresentToken(syntaxtree.XMLNS_KEYWORD) {
		return nil, nil
	}

	snippet := req.Snippets.NamespaceDeclaration
	return []Item{
		{
			Label:            snippet.Label,
			InsertText:       snippet.Snippet,
			InsertTextFormat: SnippetFormat,
			Kind:             SnippetItem,
			Detail:           snippet.Detail,
			Priority:         KEYWORD_PRIORITY,
		},
	}, nil
}

package codecompletion

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/scoperesolver"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/snippets"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// Context is the immutable input of a completion request.
type Context struct {
	FileName string
	Module   moduleid.ModuleIdentifier //requesting module
	Cursor   int32                     //byte offset
	Tree     *syntaxtree.Tree
	Model    semantic.Model
}

// A Request is the state of a completion request passed to providers, it is discarded after the response.
type Request struct {
	Context        Context
	Classification Classification

	Acceptor *signature.ImportsAcceptor
	Renderer *signature.Renderer
	Resolver *scoperesolver.Resolver
	Snippets *snippets.Resources
	Logger   zerolog.Logger
}

func (r *Request) Tree() *syntaxtree.Tree {
	return r.Context.Tree
}

func (r *Request) Model() semantic.Model {
	return r.Context.Model
}

// Render renders a type signature relative to the requesting module.
func (r *Request) Render(ctx context.Context, text string) (signature.Rendered, error) {
	return r.Renderer.Render(ctx, text)
}

// NamePrefix returns the part of the name of node located before the cursor.
func (r *Request) NamePrefix(node syntaxtree.NodeID) string {
	n := r.Tree().Node(node)
	length := int(r.Context.Cursor - n.Span.Start)
	if length <= 0 {
		return ""
	}
	if length >= len(n.Name) {
		return n.Name
	}
	return n.Name[:length]
}

func hasPrefix(name, prefix string) bool {
	return prefix == "" || strings.HasPrefix(name, prefix)
}

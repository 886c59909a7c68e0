package codecompletion

import (
	"context"
	"strings"

	"github.com/inoxlang/ctxcompletion/internal/scoperesolver"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// Item priorities, lower values come first.
const (
	LOCAL_SYMBOL_PRIORITY = iota
	OUTER_SYMBOL_PRIORITY
	MODULE_SYMBOL_PRIORITY
	KEYWORD_PRIORITY
	IMPORTABLE_PRIORITY
)

// DefaultProviders returns a new instance of each shipped provider.
func DefaultProviders() []Provider {
	return []Provider{
		NamespaceDeclarationProvider{},
		ImportDeclarationProvider{},
		NewBlockProvider(syntaxtree.FunctionBodyBlock),
		NewBlockProvider(syntaxtree.BlockStatement),
		SimpleNameReferenceProvider{},
		TypeDescriptorProvider{},
		FunctionCallProvider{},
	}
}

// symbolItem creates the item of a visible symbol, type signatures are rendered relative to the
// requesting module.
func symbolItem(ctx context.Context, req *Request, symbol scoperesolver.VisibleSymbol) (Item, error) {
	entry := symbol.Entry

	item := Item{
		Label:    entry.Name,
		Priority: symbolPriority(req, symbol),
	}

	var signatureText string

	switch entry.Kind {
	case semantic.VariableSymbol:
		item.Kind = VariableItem
		signatureText = entry.Type
	case semantic.FunctionSymbol:
		item.Kind = FunctionItem
		signatureText = functionSignature(entry)
		item.InsertText = entry.Name + "(${1})"
		item.InsertTextFormat = SnippetFormat
	case semantic.TypeSymbol:
		item.Kind = TypeItem
		signatureText = entry.Type
	}

	if signatureText != "" {
		rendered, err := req.Render(ctx, signatureText)
		if err != nil {
			return Item{}, err
		}
		item.Detail = rendered.Text
		item.addModules(rendered.Modules...)
	}

	return item, nil
}

func symbolPriority(req *Request, symbol scoperesolver.VisibleSymbol) int {
	switch {
	case symbol.Owner == req.Tree().Root():
		return MODULE_SYMBOL_PRIORITY
	case symbol.ScopeDistance == 0:
		return LOCAL_SYMBOL_PRIORITY
	default:
		return OUTER_SYMBOL_PRIORITY
	}
}

// functionSignature returns the declared type of a function or builds one from its parameters:
// function (int a, string b) returns string.
func functionSignature(entry semantic.SymbolEntry) string {
	if entry.Type != "" {
		return entry.Type
	}

	var b strings.Builder
	b.WriteString(syntaxtree.FUNCTION_KEYWORD_STRING)
	b.WriteString(" (")
	for i, param := range entry.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Type)
		b.WriteByte(' ')
		b.WriteString(param.Name)
	}
	b.WriteByte(')')

	if entry.ReturnType != "" {
		b.WriteByte(' ')
		b.WriteString(syntaxtree.RETURNS_KEYWORD_STRING)
		b.WriteByte(' ')
		b.WriteString(entry.ReturnType)
	}
	return b.String()
}

package scoperesolver

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// UNKNOWN_TYPE is returned by ResolveType when no variable with the searched name is visible.
const UNKNOWN_TYPE = "$unknown"

// A Resolver looks up names by ascending from a node to the module root and checking the scope
// owned by each node on the way. The ascent is an iterative loop over parent links: since a parent
// always has a lower ID than its children it strictly moves toward the root and terminates.
type Resolver struct {
	tree     *syntaxtree.Tree
	model    semantic.Model
	renderer *signature.Renderer
}

func New(tree *syntaxtree.Tree, model semantic.Model, renderer *signature.Renderer) *Resolver {
	return &Resolver{
		tree:     tree,
		model:    model,
		renderer: renderer,
	}
}

// ResolveType returns the rendered declared type of the closest variable named name, or UNKNOWN_TYPE.
func (r *Resolver) ResolveType(ctx context.Context, name string, start syntaxtree.NodeID) (string, error) {
	rendered, found, err := r.ResolveRenderedType(ctx, name, start)
	if err != nil {
		return "", err
	}
	if !found {
		return UNKNOWN_TYPE, nil
	}
	return rendered.Text, nil
}

// ResolveRenderedType is like ResolveType but returns the full rendering result, found is false if
// no variable is found.
func (r *Resolver) ResolveRenderedType(ctx context.Context, name string, start syntaxtree.NodeID) (_ signature.Rendered, found bool, _ error) {
	entry, _, found, err := r.LookupSymbol(ctx, name, start, semantic.VariableSymbol)
	if err != nil || !found {
		return signature.Rendered{}, false, err
	}

	rendered, err := r.renderer.Render(ctx, entry.Type)
	if err != nil {
		return signature.Rendered{}, false, err
	}
	return rendered, true, nil
}

// LookupSymbol searches for a symbol named name of the given kind, starting at start (included).
// Bindings of other kinds are ignored and do not stop the ascent. owner is the node owning the
// scope of the symbol.
func (r *Resolver) LookupSymbol(ctx context.Context, name string, start syntaxtree.NodeID, kind semantic.SymbolKind) (
	entry semantic.SymbolEntry, owner syntaxtree.NodeID, found bool, err error,
) {
	for node, ok := start, true; ok; node, ok = r.tree.Parent(node) {
		if err := ctx.Err(); err != nil {
			return semantic.SymbolEntry{}, syntaxtree.NoNode, false, err
		}

		scope, hasScope := r.model.ScopeOf(node)
		if !hasScope {
			continue
		}

		entry, ok := scope.Lookup(name)
		if ok && entry.Kind == kind {
			return entry, node, true, nil
		}
	}

	return semantic.SymbolEntry{}, syntaxtree.NoNode, false, nil
}

type VisibleSymbol struct {
	Entry semantic.SymbolEntry
	Owner syntaxtree.NodeID //node owning the scope of the symbol

	//number of scopes between the start node and the scope of the symbol, 0 for the closest scope.
	ScopeDistance int
}

// VisibleSymbols returns the symbols visible from start, closest scopes first and declaration order
// within a scope. Symbols shadowed by a closer declaration are not returned, and neither are the
// variables declared at or after the cursor (if their definition span is known).
func (r *Resolver) VisibleSymbols(ctx context.Context, start syntaxtree.NodeID, cursor int32) ([]VisibleSymbol, error) {
	var symbols []VisibleSymbol
	seen := map[string]bool{}
	distance := 0

	for node, ok := start, true; ok; node, ok = r.tree.Parent(node) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scope, hasScope := r.model.ScopeOf(node)
		if !hasScope {
			continue
		}

		for _, entry := range scope.Symbols() {
			if seen[entry.Name] {
				continue
			}
			if entry.Kind == semantic.VariableSymbol && isDeclaredAfter(entry, cursor) {
				continue
			}
			seen[entry.Name] = true
			symbols = append(symbols, VisibleSymbol{Entry: entry, Owner: node, ScopeDistance: distance})
		}
		distance++
	}

	return symbols, nil
}

func isDeclaredAfter(entry semantic.SymbolEntry, cursor int32) bool {
	return entry.DefinitionSpan != (sourcecode.NodeSpan{}) && entry.DefinitionSpan.Start >= cursor
}

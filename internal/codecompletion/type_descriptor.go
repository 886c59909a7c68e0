package codecompletion

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// TypeDescriptorProvider suggests the builtin types, the visible type definitions and the types
// exported by the modules of the catalog. Catalog types are rendered relative to the requesting
// module, so that types of modules not yet imported carry an import edit. Only the highest version
// of each module path is suggested, it is also the version existing imports are resolved to.
type TypeDescriptorProvider struct{}

func (TypeDescriptorProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.TypeDescriptor
}

func (TypeDescriptorProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	prefix := req.NamePrefix(node)
	var items []Item

	for _, typ := range req.Snippets.BuiltinTypes {
		if hasPrefix(typ, prefix) {
			items = append(items, Item{
				Label:    typ,
				Kind:     KeywordItem,
				Priority: KEYWORD_PRIORITY,
			})
		}
	}

	symbols, err := req.Resolver.VisibleSymbols(ctx, node, req.Context.Cursor)
	if err != nil {
		return nil, err
	}
	for _, symbol := range symbols {
		if symbol.Entry.Kind != semantic.TypeSymbol || !hasPrefix(symbol.Entry.Name, prefix) {
			continue
		}
		item, err := symbolItem(ctx, req, symbol)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	catalog := req.Model().Modules()
	latestVersions := map[string]moduleid.ModuleIdentifier{}

	for _, info := range catalog {
		path := info.ID.ModulePath()
		if _, ok := latestVersions[path]; ok {
			continue
		}
		if latest, ok := findImportedModule(path, catalog); ok {
			latestVersions[path] = latest
		}
	}

	for _, info := range catalog {
		if info.ID != req.Context.Module && latestVersions[info.ID.ModulePath()] != info.ID {
			continue
		}

		priority := IMPORTABLE_PRIORITY
		if info.ID == req.Context.Module {
			priority = MODULE_SYMBOL_PRIORITY
		}

		for _, typeName := range info.Types {
			if !hasPrefix(typeName, prefix) && !hasPrefix(info.ID.LastNameSegment()+string(signature.MODULE_SEPARATOR)+typeName, prefix) {
				continue
			}

			qualified := qualifiedTypeName(info, typeName)
			rendered, err := req.Render(ctx, qualified)
			if err != nil {
				return nil, err
			}

			item := Item{
				Label:    rendered.Text,
				Kind:     TypeItem,
				Detail:   info.ID.String(),
				Priority: priority,
			}
			item.addModules(rendered.Modules...)
			items = append(items, item)
		}
	}

	return items, nil
}

// qualifiedTypeName returns org/package:version:Type.
func qualifiedTypeName(info semantic.ModuleInfo, typeName string) string {
	return info.ID.String() + string(signature.MODULE_SEPARATOR) + typeName
}

package codecompletion

import (
	"context"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// ImportDeclarationProvider suggests the modules of the catalog that are neither imported by the
// document nor the requesting module. There is a single item per module path, its detail is the
// highest version available.
type ImportDeclarationProvider struct{}

func (ImportDeclarationProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.ImportDeclaration
}

func (ImportDeclarationProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	catalog := req.Model().Modules()

	imported := map[string]bool{
		req.Context.Module.ModulePath(): true,
	}
	for _, entry := range req.Acceptor.Entries() {
		imported[entry.Module.ModulePath()] = true
	}

	prefix := req.NamePrefix(node)
	var items []Item
	added := map[string]bool{}

	for _, info := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := info.ID.ModulePath()
		if imported[path] || added[path] || !hasPrefix(path, prefix) {
			continue
		}
		added[path] = true

		module, _ := findImportedModule(path, catalog)
		if module.IsZero() {
			module = info.ID
		}

		items = append(items, Item{
			Label:    path,
			Kind:     ModuleItem,
			Detail:   module.Version,
			Priority: IMPORTABLE_PRIORITY,
		})
	}

	return items, nil
}

package completionserver

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.lsp.dev/protocol"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// An AnalyzedDocument is the JSON form of a document analyzed by an external front end: its
// syntax tree, its semantic model and the module it belongs to.
type AnalyzedDocument struct {
	Module moduleid.ModuleIdentifier `json:"module"`
	Tree   syntaxtree.TreeDocument   `json:"tree"`
	Model  semantic.ModelDocument    `json:"model"`
}

func ReadAnalyzedDocument(path string) (AnalyzedDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return AnalyzedDocument{}, err
	}

	var doc AnalyzedDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return AnalyzedDocument{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// Build builds the syntax tree and the semantic model of the document.
func (d AnalyzedDocument) Build() (*syntaxtree.Tree, *semantic.Data, error) {
	tree, err := d.Tree.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid syntax tree: %w", err)
	}

	model, err := d.Model.Build(tree)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid semantic model: %w", err)
	}
	return tree, model, nil
}

func (d AnalyzedDocument) ToDocument(uri protocol.DocumentURI, version int32) (*Document, error) {
	tree, model, err := d.Build()
	if err != nil {
		return nil, err
	}

	return &Document{
		URI:     uri,
		Version: version,
		Module:  d.Module,
		Tree:    tree,
		Model:   model,
	}, nil
}

package completionserver

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/inoxlang/ctxcompletion/internal/codecompletion"
	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
	"github.com/inoxlang/ctxcompletion/internal/utils"
)

// ToCompletionList converts the items of a request to LSP completion items. The import edits of an
// item become additional text edits inserting one import declaration per line after the last import
// of the document (or at the start of the document if there is no import).
func ToCompletionList(items []codecompletion.Item, tree *syntaxtree.Tree) *protocol.CompletionList {
	insertionOffset, hasImports := importInsertionOffset(tree)
	var insertionPosition protocol.Position
	if doc := tree.Document(); doc != nil {
		insertionPosition = toPosition(doc, insertionOffset)
	}

	list := &protocol.CompletionList{
		Items: utils.MapSlice(items, func(item codecompletion.Item) protocol.CompletionItem {
			lspItem := protocol.CompletionItem{
				Label:            item.Label,
				Kind:             toCompletionItemKind(item.Kind),
				Detail:           item.Detail,
				InsertText:       item.InsertText,
				InsertTextFormat: toInsertTextFormat(item.InsertTextFormat),
				SortText:         item.SortText,
			}

			for _, edit := range item.ImportEdits {
				lspItem.AdditionalTextEdits = append(lspItem.AdditionalTextEdits, protocol.TextEdit{
					Range: protocol.Range{
						Start: insertionPosition,
						End:   insertionPosition,
					},
					NewText: importEditText(edit, hasImports),
				})
			}
			return lspItem
		}),
	}

	return list
}

// ImportDeclarationText returns the import declaration of an edit: import org/package; or
// import org/package as alias; if the alias is not the default one.
func ImportDeclarationText(edit codecompletion.ImportEdit) string {
	var b strings.Builder
	b.WriteString(syntaxtree.IMPORT_KEYWORD_STRING)
	b.WriteByte(' ')
	b.WriteString(edit.Module.ModulePath())
	if edit.Alias != edit.Module.LastNameSegment() {
		b.WriteByte(' ')
		b.WriteString(syntaxtree.AS_KEYWORD_STRING)
		b.WriteByte(' ')
		b.WriteString(edit.Alias)
	}
	b.WriteByte(';')
	return b.String()
}

func importEditText(edit codecompletion.ImportEdit, afterImport bool) string {
	if afterImport {
		return "\n" + ImportDeclarationText(edit)
	}
	return ImportDeclarationText(edit) + "\n"
}

// importInsertionOffset returns the end of the last top level import declaration, or 0.
func importInsertionOffset(tree *syntaxtree.Tree) (offset int32, hasImports bool) {
	imports := tree.ChildrenOfKind(tree.Root(), syntaxtree.ImportDeclaration)
	if len(imports) == 0 {
		return 0, false
	}
	return tree.Node(imports[len(imports)-1]).Span.End, true
}

func toPosition(doc *sourcecode.Document, offset int32) protocol.Position {
	line, character := doc.UTF16Position(offset)
	return protocol.Position{Line: line, Character: character}
}

func toCompletionItemKind(kind codecompletion.ItemKind) protocol.CompletionItemKind {
	switch kind {
	case codecompletion.KeywordItem:
		return protocol.CompletionItemKindKeyword
	case codecompletion.SnippetItem:
		return protocol.CompletionItemKindSnippet
	case codecompletion.VariableItem:
		return protocol.CompletionItemKindVariable
	case codecompletion.FunctionItem:
		return protocol.CompletionItemKindFunction
	case codecompletion.TypeItem:
		return protocol.CompletionItemKindStruct
	case codecompletion.ModuleItem:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindText
	}
}

func toInsertTextFormat(format codecompletion.InsertTextFormat) protocol.InsertTextFormat {
	if format == codecompletion.SnippetFormat {
		return protocol.InsertTextFormatSnippet
	}
	return protocol.InsertTextFormatPlainText
}

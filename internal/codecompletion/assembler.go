package codecompletion

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/utils"
)

const MIN_SORT_TEXT_WIDTH = 4

type AssembleOptions struct {
	MaxItems       int //0 means no limit
	SnippetSupport bool
}

// Assemble finalizes the items of a request: it attaches to each item the import edits of the
// modules it references that are not imported by the document, orders the items (priority, natural
// label order, then provider order) and sets their sort text. Duplicate items (same label and kind)
// are removed and the list is truncated to opts.MaxItems.
func Assemble(items []Item, acceptor *signature.ImportsAcceptor, opts AssembleOptions) []Item {
	if len(items) == 0 {
		return nil
	}

	type key struct {
		label string
		kind  ItemKind
	}
	seen := make(map[key]bool, len(items))
	result := make([]Item, 0, len(items))

	for _, item := range items {
		k := key{item.Label, item.Kind}
		if seen[k] {
			continue
		}
		seen[k] = true

		item.ImportEdits = nil
		for _, module := range item.Modules {
			entry, ok := acceptor.Entry(module)
			if ok && !entry.Existing {
				item.ImportEdits = append(item.ImportEdits, ImportEdit{Module: entry.Module, Alias: entry.Alias})
			}
		}

		if item.InsertText == "" {
			item.InsertText = item.Label
		}
		if item.InsertTextFormat == 0 {
			item.InsertTextFormat = PlainTextFormat
		}
		if item.InsertTextFormat == SnippetFormat && !opts.SnippetSupport {
			item.InsertText = SnippetToPlainText(item.InsertText)
			item.InsertTextFormat = PlainTextFormat
		}

		result = append(result, item)
	}

	slices.SortStableFunc(result, func(a, b Item) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		switch {
		case natural.Less(a.Label, b.Label):
			return -1
		case natural.Less(b.Label, a.Label):
			return 1
		}
		return 0
	})

	if opts.MaxItems > 0 && len(result) > opts.MaxItems {
		result = result[:opts.MaxItems]
	}

	width := max(MIN_SORT_TEXT_WIDTH, utils.CountDigits(len(result)))
	for i := range result {
		result[i].SortText = fmt.Sprintf("%0*d", width, i)
	}

	return result
}

// SnippetToPlainText removes tab stops from a snippet: ${1:name} becomes name, $1 and ${1} are removed.
// Escaped characters (\$, \}, \\) are unescaped.
func SnippetToPlainText(snippet string) string {
	var b strings.Builder
	b.Grow(len(snippet))

	depth := 0 //number of open placeholders

	for i := 0; i < len(snippet); i++ {
		c := snippet[i]

		switch {
		case c == '\\' && i+1 < len(snippet):
			i++
			b.WriteByte(snippet[i])
		case c == '$' && i+1 < len(snippet) && isDigit(snippet[i+1]):
			for i+1 < len(snippet) && isDigit(snippet[i+1]) {
				i++
			}
		case c == '$' && i+2 < len(snippet) && snippet[i+1] == '{' && isDigit(snippet[i+2]):
			i += 2
			for i+1 < len(snippet) && isDigit(snippet[i+1]) {
				i++
			}
			if i+1 < len(snippet) && snippet[i+1] == ':' {
				i++
			}
			depth++
		case c == '}' && depth > 0:
			depth--
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

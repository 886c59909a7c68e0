package codecompletion

import (
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
)

type ItemKind int

const (
	KeywordItem ItemKind = iota + 1
	SnippetItem
	VariableItem
	FunctionItem
	TypeItem
	ModuleItem
)

var itemKindNames = [...]string{
	KeywordItem:  "keyword",
	SnippetItem:  "snippet",
	VariableItem: "variable",
	FunctionItem: "function",
	TypeItem:     "type",
	ModuleItem:   "module",
}

func (k ItemKind) String() string {
	if k <= 0 || int(k) >= len(itemKindNames) {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
	return itemKindNames[k]
}

func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type InsertTextFormat int

const (
	PlainTextFormat InsertTextFormat = iota + 1
	SnippetFormat
)

func (f InsertTextFormat) String() string {
	switch f {
	case PlainTextFormat:
		return "plain-text"
	case SnippetFormat:
		return "snippet"
	default:
		return fmt.Sprintf("InsertTextFormat(%d)", int(f))
	}
}

func (f InsertTextFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// An ImportEdit is an import the document must add if the item is accepted.
type ImportEdit struct {
	Module moduleid.ModuleIdentifier `json:"module"`
	Alias  string                    `json:"alias"`
}

// An Item is a single completion suggestion.
type Item struct {
	Label            string           `json:"label"`
	InsertText       string           `json:"insertText"`
	InsertTextFormat InsertTextFormat `json:"insertTextFormat"`
	Kind             ItemKind         `json:"kind"`
	Detail           string           `json:"detail,omitempty"`

	//set by the assembler
	SortText    string       `json:"sortText"`
	ImportEdits []ImportEdit `json:"importEdits,omitempty"`

	//Lower values come first.
	Priority int `json:"-"`

	//External modules referenced by the inserted text or by the detail,
	//the assembler creates an import edit for each module not imported by the document.
	Modules []moduleid.ModuleIdentifier `json:"-"`
}

func (i *Item) addModules(modules ...moduleid.ModuleIdentifier) {
outer:
	for _, module := range modules {
		for _, m := range i.Modules {
			if m == module {
				continue outer
			}
		}
		i.Modules = append(i.Modules, module)
	}
}

package semantic

import (
	"errors"
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
)

var (
	ErrDuplicateSymbol = errors.New("symbol is already declared in scope")
	ErrEmptySymbolName = errors.New("empty symbol name")
)

type SymbolKind uint8

const (
	VariableSymbol SymbolKind = iota + 1
	FunctionSymbol
	TypeSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case FunctionSymbol:
		return "function"
	case TypeSymbol:
		return "type"
	default:
		return fmt.Sprintf("SymbolKind(%d)", k)
	}
}

func (k SymbolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SymbolKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "variable":
		*k = VariableSymbol
	case "function":
		*k = FunctionSymbol
	case "type":
		*k = TypeSymbol
	default:
		return fmt.Errorf("unknown symbol kind %q", text)
	}
	return nil
}

type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// A SymbolEntry describes a declared symbol. Type signatures are texts emitted by the semantic model,
// cross-module references are fully qualified (org/package:version:Type).
type SymbolEntry struct {
	Name string     `json:"name"`
	Type string     `json:"type"`
	Kind SymbolKind `json:"kind"`

	//functions only
	Params     []Param `json:"params,omitempty"`
	ReturnType string  `json:"returnType,omitempty"`

	DefinitionSpan sourcecode.NodeSpan `json:"definitionSpan"`
}

// A Scope maps names to symbols, it is immutable once created. The parent of the module
// scope is nil.
type Scope struct {
	symbols map[string]SymbolEntry
	names   []string //declaration order
	parent  *Scope
}

func NewScope(parent *Scope, entries ...SymbolEntry) (*Scope, error) {
	scope := &Scope{
		symbols: make(map[string]SymbolEntry, len(entries)),
		parent:  parent,
	}

	for _, entry := range entries {
		if entry.Name == "" {
			return nil, ErrEmptySymbolName
		}
		if _, ok := scope.symbols[entry.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, entry.Name)
		}
		scope.symbols[entry.Name] = entry
		scope.names = append(scope.names, entry.Name)
	}

	return scope, nil
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func (s *Scope) Lookup(name string) (SymbolEntry, bool) {
	entry, ok := s.symbols[name]
	return entry, ok
}

// Symbols returns the symbols of the scope in declaration order.
func (s *Scope) Symbols() []SymbolEntry {
	entries := make([]SymbolEntry, 0, len(s.names))
	for _, name := range s.names {
		entries = append(entries, s.symbols[name])
	}
	return entries
}

func (s *Scope) Len() int {
	return len(s.names)
}

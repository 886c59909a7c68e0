package signature

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
)

var (
	ErrAliasAlreadyUsed = errors.New("alias is already used by another module")
	ErrInvalidAlias     = errors.New("invalid alias")

	//aliases that would be parsed as a keyword or a builtin type.
	RESERVED_ALIASES = map[string]bool{
		"int": true, "float": true, "decimal": true, "string": true, "boolean": true, "byte": true,
		"any": true, "anydata": true, "json": true, "xml": true, "error": true, "map": true, "never": true,
		"function": true, "import": true, "as": true, "public": true, "return": true, "returns": true,
		"if": true, "else": true, "while": true, "foreach": true, "var": true, "xmlns": true, "type": true,
	}
)

type ImportEntry struct {
	Module moduleid.ModuleIdentifier
	Alias  string

	//true if the document already imports the module, no import edit is required.
	Existing bool
}

// An ImportsAcceptor is the request-scoped set of the imports referenced by rendered texts.
// It never contains two entries for the same module, registering a module twice is a no-op.
// It is not safe for concurrent use: each request owns its acceptor.
type ImportsAcceptor struct {
	entries []ImportEntry
	indexes map[moduleid.ModuleIdentifier]int
	aliases map[string]moduleid.ModuleIdentifier
}

func NewImportsAcceptor() *ImportsAcceptor {
	return &ImportsAcceptor{
		indexes: map[moduleid.ModuleIdentifier]int{},
		aliases: map[string]moduleid.ModuleIdentifier{},
	}
}

// AddExisting records an import already present in the document.
func (a *ImportsAcceptor) AddExisting(module moduleid.ModuleIdentifier, alias string) error {
	_, err := a.register(module, alias, true)
	return err
}

// Register registers a new import and returns its entry. If the module is already registered the
// existing entry is returned and isNew is false, the alias argument is then ignored.
func (a *ImportsAcceptor) Register(module moduleid.ModuleIdentifier, alias string) (entry ImportEntry, isNew bool, err error) {
	if index, ok := a.indexes[module]; ok {
		return a.entries[index], false, nil
	}
	entry, err = a.register(module, alias, false)
	if err != nil {
		return ImportEntry{}, false, err
	}
	return entry, true, nil
}

func (a *ImportsAcceptor) register(module moduleid.ModuleIdentifier, alias string, existing bool) (ImportEntry, error) {
	if index, ok := a.indexes[module]; ok {
		return a.entries[index], nil
	}

	if alias == "" {
		return ImportEntry{}, fmt.Errorf("%w: empty alias for %s", ErrInvalidAlias, module)
	}
	for _, r := range alias {
		if !moduleid.IsIdentChar(r) {
			return ImportEntry{}, fmt.Errorf("%w: %q", ErrInvalidAlias, alias)
		}
	}

	if owner, ok := a.aliases[alias]; ok && owner != module {
		return ImportEntry{}, fmt.Errorf("%w: %q is used by %s", ErrAliasAlreadyUsed, alias, owner)
	}

	entry := ImportEntry{Module: module, Alias: alias, Existing: existing}
	a.indexes[module] = len(a.entries)
	a.aliases[alias] = module
	a.entries = append(a.entries, entry)
	return entry, nil
}

func (a *ImportsAcceptor) Entry(module moduleid.ModuleIdentifier) (ImportEntry, bool) {
	index, ok := a.indexes[module]
	if !ok {
		return ImportEntry{}, false
	}
	return a.entries[index], true
}

func (a *ImportsAcceptor) Alias(module moduleid.ModuleIdentifier) (string, bool) {
	entry, ok := a.Entry(module)
	return entry.Alias, ok
}

func (a *ImportsAcceptor) IsAliasTaken(alias string) bool {
	_, ok := a.aliases[alias]
	return ok
}

// Entries returns all entries in registration order.
func (a *ImportsAcceptor) Entries() []ImportEntry {
	return append([]ImportEntry(nil), a.entries...)
}

// NewImports returns the entries that are not already imported by the document, in registration order.
func (a *ImportsAcceptor) NewImports() []ImportEntry {
	var result []ImportEntry
	for _, entry := range a.entries {
		if !entry.Existing {
			result = append(result, entry)
		}
	}
	return result
}

func (a *ImportsAcceptor) Len() int {
	return len(a.entries)
}

// DeriveAlias derives an alias for module from the last segment of its package name. If the alias is
// reserved or used by another module a numeric suffix is added: mod1_1, mod1_2, ...
func DeriveAlias(module moduleid.ModuleIdentifier, acceptor *ImportsAcceptor) string {
	base := module.LastNameSegment()

	isAvailable := func(alias string) bool {
		if RESERVED_ALIASES[alias] {
			return false
		}
		owner, taken := acceptor.aliases[alias]
		return !taken || owner == module
	}

	if isAvailable(base) {
		return base
	}

	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if isAvailable(candidate) {
			return candidate
		}
	}
}

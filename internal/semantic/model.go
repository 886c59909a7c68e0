package semantic

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/btree"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

var (
	ErrNotAScopeContainer = errors.New("node cannot own a scope")
	ErrScopeAlreadySet    = errors.New("scope is already set")
	ErrInvalidNode        = errors.New("invalid node")
)

// Model is the query surface of the semantic model used by the completion engine.
// Implementations must be safe for concurrent reads.
type Model interface {
	// ScopeOf returns the scope owned by a node, if any.
	ScopeOf(node syntaxtree.NodeID) (*Scope, bool)

	// TypeOf returns the type signature of an expression node.
	TypeOf(node syntaxtree.NodeID) (string, bool)

	// Modules returns the modules that can be imported, ordered by identifier.
	Modules() []ModuleInfo
}

// ModuleInfo describes a module available to the document and the types it exports.
type ModuleInfo struct {
	ID    moduleid.ModuleIdentifier `json:"id"`
	Types []string                  `json:"types"` //sorted
}

// Data is an in-memory Model. It should not be modified once shared between goroutines.
type Data struct {
	tree      *syntaxtree.Tree
	scopes    map[syntaxtree.NodeID]*Scope
	nodeTypes map[syntaxtree.NodeID]string
	modules   btree.Map[string, ModuleInfo]
}

var _ Model = (*Data)(nil)

func NewData(tree *syntaxtree.Tree) *Data {
	return &Data{
		tree:      tree,
		scopes:    map[syntaxtree.NodeID]*Scope{},
		nodeTypes: map[syntaxtree.NodeID]string{},
	}
}

func (d *Data) Tree() *syntaxtree.Tree {
	return d.tree
}

func (d *Data) ScopeOf(node syntaxtree.NodeID) (*Scope, bool) {
	scope, ok := d.scopes[node]
	return scope, ok
}

func (d *Data) TypeOf(node syntaxtree.NodeID) (string, bool) {
	typ, ok := d.nodeTypes[node]
	return typ, ok
}

func (d *Data) Modules() []ModuleInfo {
	modules := make([]ModuleInfo, 0, d.modules.Len())
	d.modules.Scan(func(_ string, info ModuleInfo) bool {
		modules = append(modules, info)
		return true
	})
	return modules
}

// closestEnclosingScope returns the scope of the closest ancestor owning a scope.
func (d *Data) closestEnclosingScope(node syntaxtree.NodeID) *Scope {
	for parent, ok := d.tree.Parent(node); ok; parent, ok = d.tree.Parent(parent) {
		if scope, ok := d.scopes[parent]; ok {
			return scope
		}
	}
	return nil
}

// DeclareScope creates the scope owned by node, its parent is the scope of the closest ancestor
// owning one. Scopes should be declared from the root to the leaves.
func (d *Data) DeclareScope(node syntaxtree.NodeID, entries ...SymbolEntry) (*Scope, error) {
	if !d.tree.IsValid(node) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNode, node)
	}
	kind := d.tree.Kind(node)
	if !kind.IsScopeContainer() {
		return nil, fmt.Errorf("%w: %s", ErrNotAScopeContainer, kind)
	}
	if _, ok := d.scopes[node]; ok {
		return nil, fmt.Errorf("%w: node %d", ErrScopeAlreadySet, node)
	}

	scope, err := NewScope(d.closestEnclosingScope(node), entries...)
	if err != nil {
		return nil, err
	}
	d.scopes[node] = scope
	return scope, nil
}

func (d *Data) SetNodeType(node syntaxtree.NodeID, typ string) error {
	if !d.tree.IsValid(node) {
		return fmt.Errorf("%w: %d", ErrInvalidNode, node)
	}
	d.nodeTypes[node] = typ
	return nil
}

func (d *Data) AddModule(info ModuleInfo) error {
	if err := info.ID.Validate(); err != nil {
		return fmt.Errorf("invalid module %s: %w", info.ID, err)
	}
	info.Types = slices.Clone(info.Types)
	slices.Sort(info.Types)
	d.modules.Set(info.ID.String(), info)
	return nil
}

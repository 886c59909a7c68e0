package syntaxtree

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// NodeKind is the tag of a syntax node, the set of kinds is closed.
type NodeKind uint8

const (
	UnspecifiedNodeKind NodeKind = iota
	ModulePart
	ImportDeclaration    //Name: org/package, optional AS_KEYWORD followed by an IDENTIFIER token (alias)
	NamespaceDeclaration //XMLNS_KEYWORD token, missing if the parser recovered without it
	FunctionDefinition
	FunctionBodyBlock
	BlockStatement
	ModuleVariableDeclaration
	VariableDeclaration
	AssignmentStatement
	ExpressionStatement
	ReturnStatement
	FunctionCall        //Name: callee, children: arguments
	SimpleNameReference //Name: referenced name
	QualifiedNameReference
	TypeDescriptor //Name: type name as written
	Literal

	//must stay last
	nodeKindCount
)

var (
	nodeKindNames = [...]string{
		UnspecifiedNodeKind:       "Unspecified",
		ModulePart:                "ModulePart",
		ImportDeclaration:         "ImportDeclaration",
		NamespaceDeclaration:      "NamespaceDeclaration",
		FunctionDefinition:        "FunctionDefinition",
		FunctionBodyBlock:         "FunctionBodyBlock",
		BlockStatement:            "BlockStatement",
		ModuleVariableDeclaration: "ModuleVariableDeclaration",
		VariableDeclaration:       "VariableDeclaration",
		AssignmentStatement:       "AssignmentStatement",
		ExpressionStatement:       "ExpressionStatement",
		ReturnStatement:           "ReturnStatement",
		FunctionCall:              "FunctionCall",
		SimpleNameReference:       "SimpleNameReference",
		QualifiedNameReference:    "QualifiedNameReference",
		TypeDescriptor:            "TypeDescriptor",
		Literal:                   "Literal",
	}

	nodeKindsByName = map[string]NodeKind{}

	//kinds of the nodes that can own a scope in the semantic model.
	scopeContainerKinds = bitset.New(uint(nodeKindCount))
)

func init() {
	scopeContainerKinds.Set(uint(ModulePart)).Set(uint(FunctionBodyBlock)).Set(uint(BlockStatement))

	for kind, name := range nodeKindNames {
		nodeKindsByName[name] = NodeKind(kind)
	}
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

func (k NodeKind) IsValid() bool {
	return k > UnspecifiedNodeKind && k < nodeKindCount
}

// IsScopeContainer reports whether nodes of kind k can own a scope (module root, function body, block).
func (k NodeKind) IsScopeContainer() bool {
	return scopeContainerKinds.Test(uint(k))
}

func ParseNodeKind(name string) (NodeKind, error) {
	kind, ok := nodeKindsByName[name]
	if !ok || kind == UnspecifiedNodeKind {
		return UnspecifiedNodeKind, fmt.Errorf("unknown node kind %q", name)
	}
	return kind, nil
}

// AllNodeKinds returns all valid node kinds in ascending order.
func AllNodeKinds() []NodeKind {
	kinds := make([]NodeKind, 0, nodeKindCount-1)
	for k := UnspecifiedNodeKind + 1; k < nodeKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(text []byte) error {
	kind, err := ParseNodeKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

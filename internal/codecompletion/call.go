package codecompletion

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/inoxlang/ctxcompletion/internal/scoperesolver"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

const (
	DEFAULT_ARG_TYPE = "any"
	DEFAULT_ARG_NAME = "arg"
)

// FunctionCallProvider suggests the arguments of a call. If the callee is a visible function a snippet
// listing every parameter is suggested, otherwise an item inserting the definition of the missing
// function is suggested. The parameters of the generated function always have a type and a name,
// nested calls included: the type of an argument comes from the model (any if unknown), its name from
// the referenced variable or from the type.
type FunctionCallProvider struct{}

func (FunctionCallProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.FunctionCall
}

func (p FunctionCallProvider) Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error) {
	callee := req.Tree().Node(node).Name
	if callee == "" {
		return nil, nil
	}

	entry, _, found, err := req.Resolver.LookupSymbol(ctx, callee, node, semantic.FunctionSymbol)
	if err != nil {
		return nil, err
	}

	if found {
		item, err := p.argumentSnippet(ctx, req, entry)
		if err != nil {
			return nil, err
		}
		return []Item{item}, nil
	}

	item, err := p.createFunctionItem(ctx, req, node, callee)
	if err != nil {
		return nil, err
	}
	return []Item{item}, nil
}

func (FunctionCallProvider) argumentSnippet(ctx context.Context, req *Request, fn semantic.SymbolEntry) (Item, error) {
	item := Item{
		Kind:             SnippetItem,
		InsertTextFormat: SnippetFormat,
		Priority:         LOCAL_SYMBOL_PRIORITY,
	}

	var label, insertText strings.Builder
	label.WriteString(fn.Name)
	label.WriteByte('(')

	for i, param := range fn.Params {
		if i > 0 {
			label.WriteString(", ")
			insertText.WriteString(", ")
		}

		rendered, err := req.Render(ctx, param.Type)
		if err != nil {
			return Item{}, err
		}
		item.addModules(rendered.Modules...)

		label.WriteString(rendered.Text)
		label.WriteByte(' ')
		label.WriteString(param.Name)

		fmt.Fprintf(&insertText, "${%d:%s}", i+1, escapeSnippetText(param.Name))
	}
	label.WriteByte(')')

	detail, err := req.Render(ctx, functionSignature(fn))
	if err != nil {
		return Item{}, err
	}
	item.addModules(detail.Modules...)

	item.Label = label.String()
	item.InsertText = insertText.String()
	item.Detail = detail.Text
	return item, nil
}

func (FunctionCallProvider) createFunctionItem(ctx context.Context, req *Request, call syntaxtree.NodeID, callee string) (Item, error) {
	tree := req.Tree()
	model := req.Model()

	item := Item{
		Label:            "create function " + callee,
		Kind:             FunctionItem,
		InsertTextFormat: PlainTextFormat,
		Priority:         LOCAL_SYMBOL_PRIORITY,
	}

	renderType := func(node syntaxtree.NodeID) (string, error) {
		typ, ok := model.TypeOf(node)
		if !ok || typ == "" || typ == scoperesolver.UNKNOWN_TYPE {
			return "", nil
		}
		rendered, err := req.Render(ctx, typ)
		if err != nil {
			return "", err
		}
		item.addModules(rendered.Modules...)
		return rendered.Text, nil
	}

	var params []semantic.Param
	usedNames := map[string]bool{}

	for _, arg := range tree.Children(call) {
		typ, err := renderType(arg)
		if err != nil {
			return Item{}, err
		}
		if typ == "" {
			typ = DEFAULT_ARG_TYPE
		}

		name := argumentName(tree.Node(arg), typ)
		if usedNames[name] {
			for i := 1; ; i++ {
				candidate := name + strconv.Itoa(i)
				if !usedNames[candidate] {
					name = candidate
					break
				}
			}
		}
		usedNames[name] = true

		params = append(params, semantic.Param{Name: name, Type: typ})
	}

	returnType, err := renderType(call)
	if err != nil {
		return Item{}, err
	}

	signatureText := functionSignature(semantic.SymbolEntry{Name: callee, Params: params, ReturnType: returnType})

	//function (int a) returns string -> function f(int a) returns string {...}
	definition := syntaxtree.FUNCTION_KEYWORD_STRING + " " + callee +
		strings.TrimPrefix(signatureText, syntaxtree.FUNCTION_KEYWORD_STRING+" ") + " {\n}"

	item.InsertText = definition
	item.Detail = signatureText
	return item, nil
}

// argumentName returns the name of the parameter receiving arg: the name of the variable for a
// variable reference, a name derived from the type otherwise (mod1:Person -> person).
func argumentName(arg syntaxtree.Node, typ string) string {
	if arg.Kind == syntaxtree.SimpleNameReference && isIdentifier(arg.Name) {
		return arg.Name
	}

	//last identifier of the type
	end := len(typ)
	for end > 0 && !isIdentifierByte(typ[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentifierByte(typ[start-1]) {
		start--
	}
	name := typ[start:end]

	if name == "" || name == DEFAULT_ARG_TYPE || !isIdentifier(name) || signature.RESERVED_ALIASES[lowerFirst(name)] {
		return DEFAULT_ARG_NAME
	}
	return lowerFirst(name)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentifierByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentifierByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func escapeSnippetText(s string) string {
	return strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`).Replace(s)
}

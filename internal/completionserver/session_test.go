package completionserver

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/inoxlang/ctxcompletion/internal/codecompletion"
	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/sourcecode"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

const (
	TEST_URI    = protocol.DocumentURI("file:///project/main.bal")
	TEST_SOURCE = "import abc/mod2 as m2;\nfunction main() {\n    \n}"
)

var (
	appModule  = moduleid.MustNew("xyz", "app", "1.0.0")
	mod1Module = moduleid.MustNew("abc", "mod1", "1.0.0")
	mod2Module = moduleid.MustNew("abc", "mod2", "1.0.0")
)

type span = syntaxtree.NodeSpan

func newTestDocument(t *testing.T, source string, withImport bool) *Document {
	b := syntaxtree.NewBuilder()
	module := b.Add(syntaxtree.NoNode, syntaxtree.ModulePart, span{End: int32(len(source))})
	if withImport {
		b.Add(module, syntaxtree.ImportDeclaration, span{Start: 0, End: 22}, syntaxtree.WithName("abc/mod2"),
			syntaxtree.WithTokens(
				syntaxtree.Token{Type: syntaxtree.IMPORT_KEYWORD, Span: span{Start: 0, End: 6}},
				syntaxtree.Token{Type: syntaxtree.AS_KEYWORD, Span: span{Start: 16, End: 18}},
				syntaxtree.Token{Type: syntaxtree.IDENTIFIER, Span: span{Start: 19, End: 21}, Raw: "m2"},
			))
	}
	fnStart := int32(len(source)) - 24
	fn := b.Add(module, syntaxtree.FunctionDefinition, span{Start: fnStart, End: int32(len(source))}, syntaxtree.WithName("main"))
	body := b.Add(fn, syntaxtree.FunctionBodyBlock, span{Start: fnStart + 16, End: int32(len(source))})

	tree, err := b.Build(sourcecode.NewDocument("main.bal", source))
	require.NoError(t, err)

	model := semantic.NewData(tree)
	_, err = model.DeclareScope(body,
		semantic.SymbolEntry{Name: "person", Kind: semantic.VariableSymbol, Type: "abc/mod1:1.0.0:Person"},
		semantic.SymbolEntry{Name: "data", Kind: semantic.VariableSymbol, Type: "abc/mod2:1.0.0:Data"},
		semantic.SymbolEntry{Name: "renamed", Kind: semantic.VariableSymbol, Type: "abc/mod2.http:1.0.0:Client"},
	)
	require.NoError(t, err)
	require.NoError(t, model.AddModule(semantic.ModuleInfo{ID: mod1Module, Types: []string{"Person"}}))
	require.NoError(t, model.AddModule(semantic.ModuleInfo{ID: mod2Module, Types: []string{"Data"}}))

	return &Document{URI: TEST_URI, Module: appModule, Tree: tree, Model: model}
}

func newTestSession(t *testing.T, providers ...codecompletion.Provider) *Session {
	config := codecompletion.Config{Logger: zerolog.Nop(), SnippetSupport: true}
	if len(providers) > 0 {
		registry, err := codecompletion.NewRegistry(providers...)
		require.NoError(t, err)
		config.Registry = registry
	}

	engine, err := codecompletion.NewEngine(config)
	require.NoError(t, err)
	return NewSession(engine, zerolog.Nop())
}

func completionParams(line, character uint32) *protocol.CompletionParams {
	return &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: TEST_URI},
			Position:     protocol.Position{Line: line, Character: character},
		},
	}
}

func findItem(list *protocol.CompletionList, label string) (protocol.CompletionItem, bool) {
	for _, item := range list.Items {
		if item.Label == label {
			return item, true
		}
	}
	return protocol.CompletionItem{}, false
}

func TestSessionComplete(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.SetDocument(newTestDocument(t, TEST_SOURCE, true)))

	list, err := session.Complete(context.Background(), completionParams(2, 4))
	require.NoError(t, err)

	person, ok := findItem(list, "person")
	if assert.True(t, ok) {
		assert.Equal(t, protocol.CompletionItemKindVariable, person.Kind)
		assert.Equal(t, "mod1:Person", person.Detail)
		assert.Equal(t, []protocol.TextEdit{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 22},
					End:   protocol.Position{Line: 0, Character: 22},
				},
				NewText: "\nimport abc/mod1;",
			},
		}, person.AdditionalTextEdits)
	}

	data, ok := findItem(list, "data")
	if assert.True(t, ok) {
		assert.Equal(t, "m2:Data", data.Detail)
		assert.Empty(t, data.AdditionalTextEdits)
	}

	ifItem, ok := findItem(list, "if")
	if assert.True(t, ok) {
		assert.Equal(t, protocol.CompletionItemKindSnippet, ifItem.Kind)
		assert.Equal(t, protocol.InsertTextFormatSnippet, ifItem.InsertTextFormat)
	}

	t.Run("unknown document", func(t *testing.T) {
		params := completionParams(0, 0)
		params.TextDocument.URI = "file:///project/other.bal"

		_, err := session.Complete(context.Background(), params)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}

func TestSessionImportEditWithoutImports(t *testing.T) {
	source := "\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\n\nfunction main() {\n    \n}"
	session := newTestSession(t)
	require.NoError(t, session.SetDocument(newTestDocument(t, source, false)))

	list, err := session.Complete(context.Background(), completionParams(23, 4))
	require.NoError(t, err)

	renamed, ok := findItem(list, "renamed")
	if assert.True(t, ok) {
		assert.Equal(t, "http:Client", renamed.Detail)
		if assert.Len(t, renamed.AdditionalTextEdits, 1) {
			assert.Equal(t, protocol.Position{}, renamed.AdditionalTextEdits[0].Range.Start)
			assert.Equal(t, "import abc/mod2.http;\n", renamed.AdditionalTextEdits[0].NewText)
		}
	}
}

func TestImportDeclarationText(t *testing.T) {
	assert.Equal(t, "import abc/mod1;", ImportDeclarationText(codecompletion.ImportEdit{Module: mod1Module, Alias: "mod1"}))
	assert.Equal(t, "import abc/mod1 as mod1_1;", ImportDeclarationText(codecompletion.ImportEdit{Module: mod1Module, Alias: "mod1_1"}))
}

func TestSessionDocuments(t *testing.T) {
	session := newTestSession(t)
	doc := newTestDocument(t, TEST_SOURCE, true)

	require.NoError(t, session.SetDocument(doc))
	assert.Equal(t, 1, session.DocumentCount())

	got, ok := session.Document(TEST_URI)
	assert.True(t, ok)
	assert.Same(t, doc, got)

	session.CloseDocument(TEST_URI)
	assert.Zero(t, session.DocumentCount())

	err := session.SetDocument(&Document{URI: TEST_URI})
	assert.ErrorIs(t, err, ErrNoSourceText)
}

// blockingProvider blocks its first call until the request is cancelled.
type blockingProvider struct {
	calls   *atomic.Int32
	started chan struct{}
}

func (p blockingProvider) Kind() syntaxtree.NodeKind {
	return syntaxtree.FunctionBodyBlock
}

func (p blockingProvider) Complete(ctx context.Context, req *codecompletion.Request, node syntaxtree.NodeID) ([]codecompletion.Item, error) {
	if p.calls.Add(1) == 1 {
		close(p.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []codecompletion.Item{{Label: "second"}}, nil
}

func TestSessionSupersededRequest(t *testing.T) {
	provider := blockingProvider{calls: &atomic.Int32{}, started: make(chan struct{})}
	session := newTestSession(t, provider)
	require.NoError(t, session.SetDocument(newTestDocument(t, TEST_SOURCE, true)))

	firstErr := make(chan error, 1)
	go func() {
		_, err := session.Complete(context.Background(), completionParams(2, 4))
		firstErr <- err
	}()

	select {
	case <-provider.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first request not started")
	}

	list, err := session.Complete(context.Background(), completionParams(2, 4))
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrRequestSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("first request not cancelled")
	}
}

func TestSessionCancelledByCaller(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.SetDocument(newTestDocument(t, TEST_SOURCE, true)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Complete(ctx, completionParams(2, 4))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRequestSuperseded)
}

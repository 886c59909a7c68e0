package codecompletion

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/scoperesolver"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/signature"
	"github.com/inoxlang/ctxcompletion/internal/snippets"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
	"github.com/inoxlang/ctxcompletion/internal/utils"
)

type Config struct {
	Registry *Registry          //if nil a registry with the default providers is used
	Snippets *snippets.Resources //if nil the embedded snippets are used
	Logger   zerolog.Logger

	MaxItems       int //0 means no limit
	SnippetSupport bool
}

// An Engine finds completions, it can be shared between goroutines.
type Engine struct {
	registry       *Registry
	snippets       *snippets.Resources
	logger         zerolog.Logger
	maxItems       int
	snippetSupport bool
}

func NewEngine(config Config) (*Engine, error) {
	registry := config.Registry
	if registry == nil {
		var err error
		registry, err = NewDefaultRegistry()
		if err != nil {
			return nil, err
		}
	}

	resources := config.Snippets
	if resources == nil {
		resources = snippets.Default()
	}

	if config.MaxItems < 0 {
		return nil, fmt.Errorf("invalid max item count: %d", config.MaxItems)
	}

	return &Engine{
		registry:       registry,
		snippets:       resources,
		logger:         config.Logger,
		maxItems:       config.MaxItems,
		snippetSupport: config.SnippetSupport,
	}, nil
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// FindCompletions returns the ordered completion items for the cursor of c. An empty list is returned
// if no provider applies at the cursor. The only errors are an *UnresolvedContextError and the error
// of ctx: the failure of a provider is logged and its items are dropped.
func (e *Engine) FindCompletions(ctx context.Context, c Context) ([]Item, error) {
	switch {
	case c.Tree == nil:
		return nil, &UnresolvedContextError{Missing: "syntax tree"}
	case c.Model == nil:
		return nil, &UnresolvedContextError{Missing: "semantic model"}
	case c.Module.IsZero():
		return nil, &UnresolvedContextError{Missing: "module identifier"}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := e.logger.With().Str("file", c.FileName).Int32("cursor", c.Cursor).Logger()

	classification, ok := Classify(c.Tree, e.registry, c.Cursor)
	if !ok {
		logger.Debug().Msg("no completion provider applies at cursor")
		return nil, nil
	}

	acceptor := signature.NewImportsAcceptor()
	e.addExistingImports(c, acceptor, logger)

	renderer := signature.NewRenderer(c.Module, acceptor, logger)

	req := &Request{
		Context:        c,
		Classification: classification,
		Acceptor:       acceptor,
		Renderer:       renderer,
		Resolver:       scoperesolver.New(c.Tree, c.Model, renderer),
		Snippets:       e.snippets,
		Logger:         logger,
	}

	items, err := e.runProvider(ctx, req)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, ctx.Err()
		}
		logger.Error().Err(err).Stringer("kind", classification.Provider.Kind()).Msg("completion provider failed")
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Assemble(items, acceptor, AssembleOptions{
		MaxItems:       e.maxItems,
		SnippetSupport: e.snippetSupport,
	}), nil
}

func (e *Engine) runProvider(ctx context.Context, req *Request) (items []Item, finalErr error) {
	node := req.Classification.Node
	provider := req.Classification.Provider

	defer func() {
		if v := recover(); v != nil {
			items = nil
			finalErr = &CompletionGenerationError{
				Kind: provider.Kind(),
				Node: node,
				Err:  fmt.Errorf("panic: %w", utils.ConvertPanicValueToError(v)),
			}
		}
	}()

	items, err := provider.Complete(ctx, req, node)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, err
		}
		return nil, &CompletionGenerationError{Kind: provider.Kind(), Node: node, Err: err}
	}
	return items, nil
}

// addExistingImports adds the imports of the document to the acceptor so that they are not imported
// again. The import declaration containing the cursor is ignored because it is being edited.
// The version of an import is the highest version of the module in the catalog of the model.
func (e *Engine) addExistingImports(c Context, acceptor *signature.ImportsAcceptor, logger zerolog.Logger) {
	tree := c.Tree
	catalog := c.Model.Modules()

	for _, importDecl := range tree.ChildrenOfKind(tree.Root(), syntaxtree.ImportDeclaration) {
		node := tree.Node(importDecl)
		if node.Span.HasPositionEndIncluded(c.Cursor) || node.Name == "" {
			continue
		}

		module, ok := findImportedModule(node.Name, catalog)
		if !ok {
			logger.Debug().Str("import", node.Name).Msg("imported module not found in the catalog")
			continue
		}

		alias := ImportAlias(node, module)
		if err := acceptor.AddExisting(module, alias); err != nil {
			logger.Debug().Err(err).Str("import", node.Name).Msg("failed to record existing import")
		}
	}
}

// ImportAlias returns the alias of an import declaration: the identifier following the 'as' keyword
// or the last segment of the package name.
func ImportAlias(node syntaxtree.Node, module moduleid.ModuleIdentifier) string {
	afterAs := false
	for _, token := range node.Tokens {
		if token.Missing {
			continue
		}
		switch {
		case token.Type == syntaxtree.AS_KEYWORD:
			afterAs = true
		case afterAs && token.Type == syntaxtree.IDENTIFIER && token.Raw != "":
			return token.Raw
		}
	}
	return module.LastNameSegment()
}

func findImportedModule(path string, catalog []semantic.ModuleInfo) (moduleid.ModuleIdentifier, bool) {
	var (
		found   moduleid.ModuleIdentifier
		highest *semver.Version
	)

	for _, info := range catalog {
		if info.ID.ModulePath() != path {
			continue
		}
		version, err := semver.NewVersion(info.ID.Version)
		if err != nil {
			continue
		}
		if highest == nil || version.GreaterThan(highest) {
			highest = version
			found = info.ID
		}
	}

	return found, highest != nil
}

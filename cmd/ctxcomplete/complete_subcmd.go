package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/inoxlang/ctxcompletion/internal/codecompletion"
	"github.com/inoxlang/ctxcompletion/internal/completionserver"
	"github.com/inoxlang/ctxcompletion/internal/config"
	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
	"github.com/inoxlang/ctxcompletion/internal/utils"
)

func Complete(ctx context.Context, mainSubCommand string, mainSubCommandArgs []string, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(mainSubCommand, flag.ContinueOnError)
	flags.SetOutput(errW)

	var (
		offset       int
		line         int
		character    int
		moduleFlag   string
		configPath   string
		maxItems     int
		noSnippets   bool
		lspFormatted bool
	)

	flags.IntVar(&offset, "offset", -1, "byte offset of the cursor")
	flags.IntVar(&line, "line", -1, "zero-based line of the cursor (LSP position), used with -character")
	flags.IntVar(&character, "character", 0, "zero-based UTF-16 column of the cursor (LSP position)")
	flags.StringVar(&moduleFlag, "module", "", "requesting module (org/package:version), overrides the module of the document")
	flags.StringVar(&configPath, "config", "", "configuration file, defaults to $XDG_CONFIG_HOME/"+config.CONFIG_FILE_RELPATH)
	flags.IntVar(&maxItems, "max-items", -1, "maximum number of items, overrides the configuration")
	flags.BoolVar(&noSnippets, "no-snippets", false, "convert snippets to plain text")
	flags.BoolVar(&lspFormatted, "lsp", false, "print an LSP completion list")

	if showHelp(flags, mainSubCommandArgs, outW) {
		return
	}

	positional, err := parseInterspersed(flags, mainSubCommandArgs)
	if err != nil {
		return ERROR_STATUS_CODE
	}

	if len(positional) == 0 {
		fmt.Fprintln(errW, "missing document path")
		return ERROR_STATUS_CODE
	}

	cfg, err := loadConfig(configPath, maxItems, noSnippets)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	logger := cfg.NewLogger(errW)

	doc, err := completionserver.ReadAnalyzedDocument(positional[0])
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	tree, model, err := doc.Build()
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	module := doc.Module
	if moduleFlag != "" {
		module, err = moduleid.Parse(moduleFlag)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
	}

	cursor, err := cursorOffset(tree, offset, line, character)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	engine, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	items, err := engine.FindCompletions(ctx, codecompletion.Context{
		FileName: doc.Tree.Name,
		Module:   module,
		Cursor:   cursor,
		Tree:     tree,
		Model:    model,
	})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	var output any = utils.EmptySliceIfNil(items)
	if lspFormatted {
		output = completionserver.ToCompletionList(items, tree)
	}

	if err := utils.WriteIndentedJSON(outW, output, "  "); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}

func newEngine(cfg config.Config, logger zerolog.Logger) (*codecompletion.Engine, error) {
	return codecompletion.NewEngine(codecompletion.Config{
		Logger:         logger,
		MaxItems:       cfg.MaxItems,
		SnippetSupport: cfg.SnippetSupport,
	})
}

// loadConfig loads the configuration and applies the overrides of the flags.
func loadConfig(path string, maxItems int, noSnippets bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if maxItems >= 0 {
		cfg.MaxItems = maxItems
	}
	if noSnippets {
		cfg.SnippetSupport = false
	}
	return cfg, cfg.Validate()
}

func cursorOffset(tree *syntaxtree.Tree, offset, line, character int) (int32, error) {
	switch {
	case offset >= 0 && line >= 0:
		return 0, errors.New("-offset and -line are mutually exclusive")
	case offset >= 0:
		return int32(offset), nil
	case line >= 0:
		if tree.Document() == nil {
			return 0, errors.New("the document has no source, -offset should be used")
		}
		if character < 0 {
			return 0, errors.New("-character should be positive")
		}
		return tree.Document().OffsetOfUTF16Position(uint32(line), uint32(character)), nil
	default:
		return 0, errors.New("missing cursor position: -offset or -line and -character")
	}
}

func ListProviderKinds(outW, errW io.Writer) int {
	registry, err := codecompletion.NewDefaultRegistry()
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	for _, kind := range registry.Kinds() {
		fmt.Fprintln(outW, kind)
	}
	return 0
}

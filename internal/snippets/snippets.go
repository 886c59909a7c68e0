package snippets

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/inoxlang/ctxcompletion/internal/utils"
)

var (
	//go:embed snippets.yaml
	DEFAULT_SNIPPETS_YAML []byte

	ErrEmptyLabel     = errors.New("snippet has an empty label")
	ErrEmptySnippet   = errors.New("snippet has no text")
	ErrDuplicateLabel = errors.New("duplicate snippet label")

	defaultResources     *Resources
	defaultResourcesOnce sync.Once
)

type Snippet struct {
	Label   string `yaml:"label"`
	Detail  string `yaml:"detail"`
	Snippet string `yaml:"snippet"` //LSP snippet syntax
}

// Resources are the opaque texts inserted by the providers: keyword and statement snippets, builtin type names.
type Resources struct {
	NamespaceDeclaration Snippet   `yaml:"namespaceDeclaration"`
	Statements           []Snippet `yaml:"statements"`
	BuiltinTypes         []string  `yaml:"builtinTypes"`
}

// Default returns the embedded resources, it panics if they are invalid.
func Default() *Resources {
	defaultResourcesOnce.Do(func() {
		defaultResources = utils.Must(Decode(DEFAULT_SNIPPETS_YAML))
	})
	return defaultResources
}

func Decode(data []byte) (*Resources, error) {
	var resources Resources
	if err := yaml.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode snippets: %w", err)
	}
	if err := resources.Validate(); err != nil {
		return nil, err
	}
	return &resources, nil
}

func (r *Resources) Validate() error {
	var errs []error

	check := func(snippet Snippet) {
		if snippet.Label == "" {
			errs = append(errs, ErrEmptyLabel)
		} else if snippet.Snippet == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrEmptySnippet, snippet.Label))
		}
	}

	check(r.NamespaceDeclaration)

	labels := map[string]bool{}
	for _, statement := range r.Statements {
		check(statement)
		if labels[statement.Label] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateLabel, statement.Label))
		}
		labels[statement.Label] = true
	}

	for _, typ := range r.BuiltinTypes {
		if typ == "" {
			errs = append(errs, fmt.Errorf("%w: builtin type", ErrEmptyLabel))
		}
	}

	return utils.CombineErrorsWithPrefixMessage("invalid snippets", errs...)
}

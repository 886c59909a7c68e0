package signature

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inoxlang/ctxcompletion/internal/moduleid"
)

const (
	ORG_SEPARATOR    = '/'
	MODULE_SEPARATOR = ':'
)

// A MalformedQualifiedReferenceError is reported when a text has the shape of a qualified reference
// (org/package:version:Type) but one of its module components is invalid. The occurrence is left
// untouched in the rendered text and no import is registered.
type MalformedQualifiedReferenceError struct {
	Reference string
	Err       error
}

func (e *MalformedQualifiedReferenceError) Error() string {
	return fmt.Sprintf("malformed qualified reference %q: %v", e.Reference, e.Err)
}

func (e *MalformedQualifiedReferenceError) Unwrap() error {
	return e.Err
}

// Rendered is the result of rendering a type signature.
type Rendered struct {
	Text string

	//modules other than the current one referenced by the text, in order of first occurrence.
	Modules []moduleid.ModuleIdentifier

	Malformed []*MalformedQualifiedReferenceError
}

// A Renderer rewrites the fully qualified references of type signatures relative to the current
// module. It is request-scoped, like its acceptor.
type Renderer struct {
	currentModule moduleid.ModuleIdentifier
	acceptor      *ImportsAcceptor
	logger        zerolog.Logger
}

func NewRenderer(currentModule moduleid.ModuleIdentifier, acceptor *ImportsAcceptor, logger zerolog.Logger) *Renderer {
	return &Renderer{
		currentModule: currentModule,
		acceptor:      acceptor,
		logger:        logger,
	}
}

func (r *Renderer) CurrentModule() moduleid.ModuleIdentifier {
	return r.currentModule
}

func (r *Renderer) Acceptor() *ImportsAcceptor {
	return r.acceptor
}

// Render is a shorthand for NewRenderer(currentModule, acceptor, zerolog.Nop()).Render(ctx, text).
func Render(ctx context.Context, text string, currentModule moduleid.ModuleIdentifier, acceptor *ImportsAcceptor) (Rendered, error) {
	return NewRenderer(currentModule, acceptor, zerolog.Nop()).Render(ctx, text)
}

// Render scans text from left to right and replaces each org/package:version: qualifier with the
// prefix to use in the current module: nothing for the current module, the registered alias of an
// already imported module, or a newly derived alias that is registered in the acceptor. The scan
// resumes right after the ':' following the version, what follows is copied as is. A text without
// any qualified reference is returned unchanged. The only returned error is the context's error.
func (r *Renderer) Render(ctx context.Context, text string) (Rendered, error) {
	result := Rendered{Text: text}

	var (
		builder    strings.Builder
		copyFrom   = 0 //start of the text not yet copied
		searchFrom = 0 //start of the text in which a qualified reference can begin
		matched    = false
	)

	for {
		if err := ctx.Err(); err != nil {
			return Rendered{}, err
		}

		ref, ok := findQualifiedReference(text, searchFrom)
		if !ok {
			break
		}

		if !matched {
			matched = true
			builder.Grow(len(text))
		}

		builder.WriteString(text[copyFrom:ref.start])

		module := moduleid.ModuleIdentifier{Org: ref.org, Name: ref.packageName, Version: ref.version}

		if err := module.Validate(); err != nil {
			malformed := &MalformedQualifiedReferenceError{Reference: text[ref.start:ref.qualifierEnd], Err: err}
			result.Malformed = append(result.Malformed, malformed)
			r.logger.Debug().Err(malformed).Msg("qualified reference left untouched")

			builder.WriteString(text[ref.start:ref.qualifierEnd])
		} else {
			prefix, err := r.prefixFor(module, &result)
			if err != nil {
				return Rendered{}, err
			}
			builder.WriteString(prefix)
		}

		//the text following the qualifier stays available, it can hold the organization of the next reference.
		copyFrom = ref.qualifierEnd
		searchFrom = ref.qualifierEnd
	}

	if !matched {
		return result, nil
	}

	builder.WriteString(text[copyFrom:])
	result.Text = builder.String()
	return result, nil
}

func (r *Renderer) prefixFor(module moduleid.ModuleIdentifier, result *Rendered) (string, error) {
	if module == r.currentModule {
		return "", nil
	}

	alias, ok := r.acceptor.Alias(module)
	if !ok {
		entry, _, err := r.acceptor.Register(module, DeriveAlias(module, r.acceptor))
		if err != nil {
			//not supposed to happen: derived aliases are always valid and free.
			return "", fmt.Errorf("failed to register import of %s: %w", module, err)
		}
		alias = entry.Alias
	}

	result.addModule(module)
	return alias + string(MODULE_SEPARATOR), nil
}

func (r *Rendered) addModule(module moduleid.ModuleIdentifier) {
	for _, m := range r.Modules {
		if m == module {
			return
		}
	}
	r.Modules = append(r.Modules, module)
}

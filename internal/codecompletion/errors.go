package codecompletion

import (
	"fmt"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

// An UnresolvedContextError is returned when a request lacks the tree, the model or the module.
// The whole request fails.
type UnresolvedContextError struct {
	Missing string
}

func (e *UnresolvedContextError) Error() string {
	return fmt.Sprintf("unresolved completion context: missing %s", e.Missing)
}

// A CompletionGenerationError is the failure of a single provider, it is logged and the items of
// the provider are dropped. It is never returned by FindCompletions.
type CompletionGenerationError struct {
	Kind syntaxtree.NodeKind
	Node syntaxtree.NodeID
	Err  error
}

func (e *CompletionGenerationError) Error() string {
	return fmt.Sprintf("failed to generate completions for %s node %d: %v", e.Kind, e.Node, e.Err)
}

func (e *CompletionGenerationError) Unwrap() error {
	return e.Err
}

package completionserver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
	"go.lsp.dev/protocol"

	"github.com/inoxlang/ctxcompletion/internal/codecompletion"
	"github.com/inoxlang/ctxcompletion/internal/moduleid"
	"github.com/inoxlang/ctxcompletion/internal/semantic"
	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrNoSourceText      = errors.New("the syntax tree of the document has no source text")
	ErrRequestSuperseded = errors.New("completion request superseded by a newer request for the same document")
)

// A Document is the analyzed state of an open document, it is replaced as a whole on each change.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Module  moduleid.ModuleIdentifier
	Tree    *syntaxtree.Tree //must have a source document
	Model   semantic.Model
}

type inflightRequest struct {
	id     uint64
	cancel context.CancelFunc
}

// A Session serves the completion requests of a client. A new request for a document cancels the
// request in flight for the same document, the cancelled request returns ErrRequestSuperseded.
type Session struct {
	engine *codecompletion.Engine
	logger zerolog.Logger

	documents     cmap.ConcurrentMap[string, *Document]
	inflight      cmap.ConcurrentMap[string, inflightRequest]
	lastRequestID atomic.Uint64
}

func NewSession(engine *codecompletion.Engine, logger zerolog.Logger) *Session {
	return &Session{
		engine:    engine,
		logger:    logger,
		documents: cmap.New[*Document](),
		inflight:  cmap.New[inflightRequest](),
	}
}

// SetDocument adds or replaces a document, the request in flight for the document is cancelled.
func (s *Session) SetDocument(doc *Document) error {
	if doc.Tree == nil || doc.Tree.Document() == nil {
		return fmt.Errorf("%w: %s", ErrNoSourceText, doc.URI)
	}

	s.documents.Set(string(doc.URI), doc)
	s.cancelInflight(doc.URI)
	return nil
}

func (s *Session) CloseDocument(uri protocol.DocumentURI) {
	s.documents.Remove(string(uri))
	s.cancelInflight(uri)
}

func (s *Session) Document(uri protocol.DocumentURI) (*Document, bool) {
	return s.documents.Get(string(uri))
}

func (s *Session) DocumentCount() int {
	return s.documents.Count()
}

func (s *Session) cancelInflight(uri protocol.DocumentURI) {
	if request, ok := s.inflight.Pop(string(uri)); ok {
		request.cancel()
	}
}

// Complete handles a textDocument/completion request.
func (s *Session) Complete(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	uri := params.TextDocument.URI

	doc, ok := s.documents.Get(string(uri))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	source := doc.Tree.Document()
	cursor := source.OffsetOfUTF16Position(params.Position.Line, params.Position.Character)

	requestCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	id := s.lastRequestID.Add(1)
	s.inflight.Upsert(string(uri), inflightRequest{id: id, cancel: cancel},
		func(exist bool, valueInMap, newValue inflightRequest) inflightRequest {
			if exist {
				valueInMap.cancel()
			}
			return newValue
		})

	defer s.inflight.RemoveCb(string(uri), func(key string, v inflightRequest, exists bool) bool {
		return exists && v.id == id
	})

	items, err := s.engine.FindCompletions(requestCtx, codecompletion.Context{
		FileName: source.Name(),
		Module:   doc.Module,
		Cursor:   cursor,
		Tree:     doc.Tree,
		Model:    doc.Model,
	})

	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			s.logger.Debug().Str("uri", string(uri)).Uint64("request", id).Msg("completion request superseded")
			return nil, ErrRequestSuperseded
		}
		return nil, err
	}

	return ToCompletionList(items, doc.Tree), nil
}

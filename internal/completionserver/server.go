package completionserver

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const (
	SERVER_NAME = "ctxcompletion"

	//notification sent by the front end after each analysis of a document.
	SET_DOCUMENT_METHOD = "ctxcompletion/setDocument"
)

var ErrShutdown = errors.New("server is shutting down")

type SetDocumentParams struct {
	URI      protocol.DocumentURI `json:"uri"`
	Version  int32                `json:"version"`
	Document AnalyzedDocument     `json:"document"`
}

// A Server exposes a Session over a JSON-RPC 2.0 connection. Documents are pushed by the front end
// with the ctxcompletion/setDocument notification and removed by textDocument/didClose.
type Server struct {
	session *Session
	logger  zerolog.Logger

	shutdown atomic.Bool
	exited   atomic.Bool
	exit     context.CancelFunc
}

// Serve serves the requests read from rwc until the client sends exit, the connection is closed or
// ctx is done.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, session *Session, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := &Server{
		session: session,
		logger:  logger,
		exit:    cancel,
	}

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, server.Handle)

	select {
	case <-ctx.Done():
		_ = conn.Close()
		if server.exited.Load() {
			return nil
		}
		return ctx.Err()
	case <-conn.Done():
		if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
			return err
		}
		return nil
	}
}

func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	logger := s.logger.With().Str("method", req.Method()).Logger()
	logger.Debug().Msg("request")

	if s.shutdown.Load() && req.Method() != protocol.MethodExit {
		return reply(ctx, nil, ErrShutdown)
	}

	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, &protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: &protocol.TextDocumentSyncOptions{
					OpenClose: true,
				},
				CompletionProvider: &protocol.CompletionOptions{},
			},
			ServerInfo: &protocol.ServerInfo{Name: SERVER_NAME},
		}, nil)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.shutdown.Store(true)
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		s.exited.Store(true)
		err := reply(ctx, nil, nil)
		s.exit()
		return err
	case SET_DOCUMENT_METHOD:
		var params SetDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		doc, err := params.Document.ToDocument(params.URI, params.Version)
		if err == nil {
			err = s.session.SetDocument(doc)
		}
		if err != nil {
			logger.Error().Err(err).Str("uri", string(params.URI)).Msg("invalid document")
		}
		return reply(ctx, nil, err)
	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		s.session.CloseDocument(params.TextDocument.URI)
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentCompletion:
		var params protocol.CompletionParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		//completions are computed concurrently so that a newer request can supersede this one.
		go func() {
			list, err := s.session.Complete(ctx, &params)
			if err != nil && !errors.Is(err, ErrRequestSuperseded) {
				logger.Error().Err(err).Msg("completion failed")
			}
			if replyErr := reply(ctx, list, err); replyErr != nil {
				logger.Debug().Err(replyErr).Msg("failed to reply")
			}
		}()
		return nil
	}

	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

func decodeParams(req jsonrpc2.Request, params any) error {
	if err := json.Unmarshal(req.Params(), params); err != nil {
		return jsonrpc2.NewError(jsonrpc2.InvalidParams, err.Error())
	}
	return nil
}

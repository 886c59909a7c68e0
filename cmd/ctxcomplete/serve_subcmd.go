package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/inoxlang/ctxcompletion/internal/completionserver"
)

func Serve(ctx context.Context, mainSubCommand string, mainSubCommandArgs []string, inR io.Reader, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(mainSubCommand, flag.ContinueOnError)
	flags.SetOutput(errW)

	var (
		configPath string
		maxItems   int
		noSnippets bool
	)

	flags.StringVar(&configPath, "config", "", "configuration file")
	flags.IntVar(&maxItems, "max-items", -1, "maximum number of items per request, overrides the configuration")
	flags.BoolVar(&noSnippets, "no-snippets", false, "convert snippets to plain text")

	if showHelp(flags, mainSubCommandArgs, outW) {
		return
	}

	if err := flags.Parse(mainSubCommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	cfg, err := loadConfig(configPath, maxItems, noSnippets)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	//stdout is used by the protocol, logs go to stderr.
	logger := cfg.NewLogger(errW)

	engine, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := completionserver.NewSession(engine, logger)
	logger.Info().Msg("serving completions on stdio")

	err = completionserver.Serve(ctx, &readWriteCloser{reader: inR, writer: outW}, session, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Send()
		return ERROR_STATUS_CODE
	}
	return 0
}

type readWriteCloser struct {
	reader io.Reader
	writer io.Writer
}

func (r *readWriteCloser) Read(b []byte) (int, error) {
	return r.reader.Read(b)
}

func (r *readWriteCloser) Write(b []byte) (int, error) {
	return r.writer.Write(b)
}

func (r *readWriteCloser) Close() error {
	var errs []error
	if closer, ok := r.writer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if closer, ok := r.reader.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

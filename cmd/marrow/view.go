package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/alnah/marrow/internal/hints"
	"github.com/alnah/marrow/internal/server"
)

// ErrListen is returned when the view server cannot bind its address.
var ErrListen = errors.New("failed to listen")

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// runView serves a document until the context is canceled or the page asks
// the application to quit.
func runView(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseViewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one file, got %d", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags.render, cfg)
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.settings != "" {
		cfg.Settings.Path = flags.settings
	}

	document := ""
	if len(positional) == 1 {
		if document, err = filepath.Abs(positional[0]); err != nil {
			return fmt.Errorf("%w: %v", ErrNoInput, err)
		}
	}

	store, err := openSettings(cfg.Settings.Path, env.Stderr)
	if err != nil {
		return err
	}
	viewer, err := newViewer(cfg, store)
	if err != nil {
		return err
	}
	defer viewer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := newLogger(env.Stderr, flags.common)
	srv := server.New(server.Options{
		Viewer:    viewer,
		Document:  document,
		Log:       log,
		Opener:    env.Opener,
		Clipboard: env.Clipboard,
		Quit:      cancel,
	})

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v%s", ErrListen, cfg.Server.Addr, err, hints.ForPortInUse(cfg.Server.Addr))
	}
	httpServer := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	url := "http://" + ln.Addr().String() + "/"
	log.Debug("serving", "addr", ln.Addr().String(), "document", document)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Viewing at %s (Ctrl+C to stop)\n", url)
	}
	if !flags.noBrowser {
		if err := env.Opener.Open(url); err != nil {
			fmt.Fprintf(env.Stderr, "warning: could not open a browser: %v\n", err)
		}
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", "error", err)
	}
	return nil
}

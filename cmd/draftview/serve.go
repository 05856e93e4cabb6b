// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/draftview/internal/backend"
	"github.com/pdiddy/draftview/internal/export"
	"github.com/pdiddy/draftview/internal/logger"
	"github.com/pdiddy/draftview/internal/server"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local web preview of the draft",
	Long: `Serve starts a web server that fetches the draft from the backend on each
request and shows it split into sections. It also serves the plain-text and
PDF exports and forwards revision feedback to the backend.

Routes: / (preview), /api/sections, /api/revise, /export/draft.txt,
/export/draft.pdf, /healthz, and the result views /api/papers?filter=&sort=,
/api/similarity?sort=, /api/entities, /api/synthesis, /api/findings.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+defaultAddr+")")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	client := backend.New(cfg.Backend)
	s := &server.Server{
		Source:  client,
		Results: client,
		Export:  export.Options{Title: cfg.Export.Title, Generator: cfg.Export.Generator, FontFile: cfg.Export.FontFile},
		Now:     time.Now,
	}
	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "Serving draft preview on %s (backend %s)\n", cfg.Serve.Addr, cfg.Backend.URL)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

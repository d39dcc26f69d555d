package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utsavgifts/catalogd/internal/audit"
	"github.com/utsavgifts/catalogd/internal/config"
	"github.com/utsavgifts/catalogd/internal/images"
	"github.com/utsavgifts/catalogd/internal/pdf"
	"github.com/utsavgifts/catalogd/internal/render"
	"github.com/utsavgifts/catalogd/internal/server"
	"github.com/utsavgifts/catalogd/internal/service"
	"github.com/utsavgifts/catalogd/internal/sheets"
	"github.com/utsavgifts/catalogd/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog web server",
		Long: `Serve the product catalog over HTTP: the filterable page, the JSON
API, spreadsheet-backed login, and PDF delivery.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}
	client, err := sheets.NewClient(ctx, *sheetsCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	serverCfg := config.LoadServerConfig()
	if serverCfg.SessionSecret == "" {
		return fmt.Errorf("server.session_secret (or CATALOG_SESSION_SECRET) must be set")
	}

	dbPath := serverCfg.DatabasePath
	if dbPath == "" {
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open login history store: %w", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate login history store: %w", err)
	}

	sinks := audit.MultiSink{audit.NewStoreSink(store, logger)}
	if sheetsCfg.CanAppend() {
		sinks = append(sinks, audit.NewSheetsSink(client, logger))
	} else {
		logger.Warn("spreadsheet credentials are read-only, audit rows stay local")
	}

	var generator service.Generator
	switch serverCfg.PDFMode {
	case "", "vector":
		generator = pdf.NewComposer(images.NewFetcher(nil, logger), serverCfg.LogoURL, logger)
	case "browser":
		if serverCfg.PublicURL == "" {
			return fmt.Errorf("server.public_url must be set when server.pdf_mode is browser")
		}
		generator = render.NewCapture(serverCfg.PublicURL, logger)
	default:
		return fmt.Errorf("unknown server.pdf_mode %q (expected vector or browser)", serverCfg.PDFMode)
	}

	srv := server.New(server.Config{
		Addr:          serverCfg.Addr,
		SessionSecret: serverCfg.SessionSecret,
		SecureCookies: serverCfg.SecureCookies,
		HistoryLimit:  serverCfg.HistoryLimit,
		LogoURL:       serverCfg.LogoURL,
	}, server.Deps{
		Source:    client,
		Creds:     client,
		Audit:     sinks,
		History:   store,
		Generator: generator,
		Logger:    logger,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

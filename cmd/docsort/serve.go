package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loandesk/docsort/internal/common"
	"github.com/loandesk/docsort/internal/config"
	"github.com/loandesk/docsort/internal/server"
	"github.com/loandesk/docsort/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document classification HTTP server",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("keywords", "", "path to the subcategory keyword CSV")
	cmd.Flags().String("categories", "", "path to the subcategory-to-category CSV")
	cmd.Flags().String("model", "", "path to the trained model artifact (optional)")
	cmd.Flags().String("db", "", "path to the audit database (empty disables the audit trail)")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("classification.keywords", cmd.Flags().Lookup("keywords"))
	_ = viper.BindPFlag("classification.categories", cmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("classification.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("storage.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	classifier := buildClassifier()
	pipe := buildPipeline(classifier)

	var store *storage.Store
	if dbPath := config.ExpandPath(viper.GetString("storage.db")); dbPath != "" {
		var err error
		store, err = storage.NewSQLiteStore(dbPath)
		if err != nil {
			return common.NewUserError("failed to open audit database", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return common.NewUserError("failed to migrate audit database", err)
		}
	} else {
		slog.Info("no audit database configured, results will not be recorded")
	}

	srv := server.New(pipe, classifier.Ruleset(), classifier.HasModel(), store, slog.Default())

	addr := viper.GetString("server.addr")
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr,
			"rules", len(classifier.Ruleset().Rules),
			"model_available", classifier.HasModel())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loandesk/docsort/internal/cli"
	"github.com/loandesk/docsort/internal/common"
	"github.com/loandesk/docsort/internal/config"
	"github.com/loandesk/docsort/internal/export"
	"github.com/loandesk/docsort/internal/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded results to an XLSX workbook",
		RunE:  runExport,
	}

	cmd.Flags().String("db", "", "path to the audit database")
	cmd.Flags().String("out", "docsort-results.xlsx", "output workbook path")
	cmd.Flags().Int("limit", 0, "export at most this many results (0 = all)")

	_ = viper.BindPFlag("storage.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dbPath := config.ExpandPath(viper.GetString("storage.db"))
	if dbPath == "" {
		return common.NewUserError("no audit database configured", nil)
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return common.NewUserError("failed to open audit database", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return common.NewUserError("failed to migrate audit database", err)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	data, err := export.NewService(store, slog.Default()).ResultsXLSX(ctx, limit)
	if err != nil {
		return common.NewUserError("export failed", err)
	}

	out, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(out, data, 0600); err != nil {
		return common.NewUserError("failed to write workbook", err)
	}

	fmt.Println(cli.FormatSuccess("wrote " + out))
	return nil
}

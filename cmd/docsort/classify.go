package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loandesk/docsort/internal/cli"
	"github.com/loandesk/docsort/internal/common"
	"github.com/loandesk/docsort/internal/config"
	"github.com/loandesk/docsort/internal/model"
	"github.com/loandesk/docsort/internal/pipeline"
	"github.com/loandesk/docsort/internal/storage"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <directory>",
		Short: "Classify and rename every document in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}

	cmd.Flags().String("keywords", "", "path to the subcategory keyword CSV")
	cmd.Flags().String("categories", "", "path to the subcategory-to-category CSV")
	cmd.Flags().String("model", "", "path to the trained model artifact (optional)")
	cmd.Flags().String("db", "", "record results in this audit database")
	cmd.Flags().Bool("json", false, "emit results as JSON instead of a summary")

	_ = viper.BindPFlag("classification.keywords", cmd.Flags().Lookup("keywords"))
	_ = viper.BindPFlag("classification.categories", cmd.Flags().Lookup("categories"))
	_ = viper.BindPFlag("classification.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("storage.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := config.ExpandPath(args[0])

	entries, err := os.ReadDir(dir)
	if err != nil {
		return common.NewUserError("failed to read directory", err)
	}

	var inputs []pipeline.Input
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("failed to read %s", path), err)
		}
		inputs = append(inputs, pipeline.Input{Filename: entry.Name(), Data: data})
	}
	if len(inputs) == 0 {
		fmt.Println(cli.FormatWarning("no documents found in " + dir))
		return nil
	}

	classifier := buildClassifier()
	pipe := buildPipeline(classifier)

	asJSON, _ := cmd.Flags().GetBool("json")

	var bar *progressbar.ProgressBar
	if !asJSON {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Classifying documents..."),
		)
	}

	results := make(map[string]model.DocumentResult, len(inputs))
	for _, in := range inputs {
		results[in.Filename] = pipe.Process(ctx, in)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	if dbPath := config.ExpandPath(viper.GetString("storage.db")); dbPath != "" {
		store, err := storage.NewSQLiteStore(dbPath)
		if err != nil {
			return common.NewUserError("failed to open audit database", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return common.NewUserError("failed to migrate audit database", err)
		}
		for _, result := range results {
			if _, err := store.SaveResult(ctx, result); err != nil {
				return common.NewUserError("failed to record result", err)
			}
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printSummary(results)
	return nil
}

func printSummary(results map[string]model.DocumentResult) {
	fmt.Println(cli.FormatTitle("Classification results"))

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := make(map[string]int)
	for _, name := range names {
		r := results[name]
		counts[r.Category]++
		switch r.Category {
		case model.CategoryError:
			fmt.Printf("  %s %s: %s\n", cli.ErrorStyle.Render(cli.ErrorIcon), name, r.Error)
		default:
			fmt.Printf("  %s %s → %s %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				name,
				r.RenamedFilename,
				cli.SubtleStyle.Render(fmt.Sprintf("[%s / %s]", r.Category, r.Subcategory)))
		}
	}

	fmt.Println()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("  %s: %d\n", category, counts[category])
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goquade/adapters/excel"
	"goquade/app"
	"goquade/domain/quade"
	"goquade/internal"
	"goquade/internal/config"
	"goquade/ui"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "goquade",
		Short: "Quade test for unreplicated complete block designs",
	}

	rootCmd.AddCommand(newTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTestCmd() *cobra.Command {
	var alpha float64
	var postHocStr string

	cmd := &cobra.Command{
		Use:   "test [files...]",
		Short: "Run the Quade test on observation matrices read from xlsx/csv files",
		Long: `Run the Quade test on one or more block-design observation matrices.

Each file must have a header row of treatment labels followed by one numeric
row per block. With several files the tests run concurrently.

Example: goquade test crops.csv --alpha 0.05 --post-hoc on`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loose on/off/yes/no values are normalized here, once;
			// the core API only ever sees a strict bool.
			postHoc, err := internal.ParseLogical(postHocStr)
			if err != nil {
				return fmt.Errorf("--post-hoc: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := internal.NewLogger(internal.LogLevelError)
			service := app.NewQuadeService(nil, logger)

			if len(args) == 1 {
				return runSingle(service, args[0], alpha, postHoc)
			}
			return runBatch(cmd.Context(), service, cfg.Test.MaxConcurrency, args, alpha, postHoc)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level, strictly between 0 and 1")
	cmd.Flags().StringVar(&postHocStr, "post-hoc", "on", "run pairwise comparisons after a significant result (on/off)")

	return cmd
}

func runSingle(service *app.QuadeService, path string, alpha float64, postHoc bool) error {
	data, err := excel.NewDataReader(path).ReadMatrix()
	if err != nil {
		return err
	}

	run, err := service.Run(context.Background(), app.RunRequest{
		Matrix:  data.Matrix,
		Alpha:   alpha,
		PostHoc: postHoc,
		Dataset: filepath.Base(path),
	})
	if err != nil {
		return err
	}

	// Nothing is printed until the whole computation has succeeded
	fmt.Print(ui.Markdown(run, data.Treatments, data.Matrix))
	return nil
}

func runBatch(ctx context.Context, service *app.QuadeService, maxConcurrency int64, paths []string, alpha float64, postHoc bool) error {
	items := make([]app.BatchItem, 0, len(paths))
	labels := make(map[string][]string, len(paths))
	matrices := make(map[string]quade.Matrix, len(paths))
	for _, path := range paths {
		data, err := excel.NewDataReader(path).ReadMatrix()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		name := filepath.Base(path)
		items = append(items, app.BatchItem{Dataset: name, Matrix: data.Matrix})
		labels[name] = data.Treatments
		matrices[name] = data.Matrix
	}

	runner := app.NewBatchRunner(service, maxConcurrency)
	results := runner.RunAll(ctx, alpha, postHoc, items)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Dataset, res.Err)
			failed++
			continue
		}
		fmt.Print(ui.Markdown(res.Run, labels[res.Dataset], matrices[res.Dataset]))
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tests failed", failed, len(results))
	}
	return nil
}

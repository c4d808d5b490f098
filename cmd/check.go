package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/lifted/batch"
	"github.com/gnolang/lifted/internal"
)

var (
	extensions      string
	workers         int
	checkJsonOutput bool
	outPath         string
	noProgress      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check that every file matches the grammar",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine(false)
		if err != nil {
			logger.Fatal("Failed to initialize parse engine", zap.Error(err))
		}

		opts := batch.Options{
			Extensions: splitList(extensions),
			Workers:    workers,
		}
		if !noProgress {
			opts.Progress = os.Stderr
		}

		failed, err := runCheck(ctx, logger, engine, args, opts, cmd.OutOrStdout())
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&extensions, "ext", "", "Comma-separated list of file extensions picked from directories, e.g. .txt,.conf")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "Number of files parsed at once (defaults to the number of CPUs)")
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output results in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not show a progress bar")
}

// runCheck parses every file under paths and prints the results. It
// returns the number of files that did not match.
func runCheck(ctx context.Context, logger *zap.Logger, engine batch.Engine, paths []string, opts batch.Options, out io.Writer) (int, error) {
	results, err := batch.ProcessFiles(ctx, logger, engine, paths, batch.ProcessFile, opts)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, res := range results {
		if !res.Matched || res.Err != nil {
			failed++
		}
	}

	if !checkJsonOutput {
		for _, res := range results {
			fmt.Fprint(out, internal.FormatSummary(res))
		}
		fmt.Fprintf(out, "%d of %d files matched\n", len(results)-failed, len(results))
		return failed, nil
	}

	d, err := internal.FormatJSON(results)
	if err != nil {
		return failed, fmt.Errorf("error marshalling results to JSON: %w", err)
	}
	if outPath == "" {
		fmt.Fprintln(out, string(d))
		return failed, nil
	}
	if err := os.WriteFile(outPath, d, 0o644); err != nil {
		return failed, fmt.Errorf("error writing JSON output file: %w", err)
	}
	return failed, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

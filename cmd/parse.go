package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/lifted/batch"
	"github.com/gnolang/lifted/grammar"
	"github.com/gnolang/lifted/internal"
)

var (
	ruleName        string
	parseJsonOutput bool
	traceRules      bool
	watchFiles      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a file, or stdin with '-', and print the value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(traceRules)
		if err != nil {
			logger.Fatal("Failed to initialize parse engine", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ok, err := runParse(ctx, engine, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logger.Error("Error parsing input", zap.Error(err))
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	parseCmd.Flags().StringVarP(&ruleName, "rule", "r", "", "Rule to parse with (defaults to the grammar's start rule)")
	parseCmd.Flags().BoolVar(&parseJsonOutput, "json", false, "Output the result in JSON format")
	parseCmd.Flags().BoolVar(&traceRules, "trace", false, "Log every rule attempt (implies --verbose)")
	parseCmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Parse the file again whenever it changes")
}

// newEngine loads the grammar named by --grammar and selects --rule.
func newEngine(trace bool) (*internal.Engine, error) {
	log := logger
	if trace && !verbose {
		var err error
		if log, err = newLogger(true); err != nil {
			return nil, err
		}
	}
	engine, err := internal.NewEngineFromFile(grammarFile, grammar.Options{Logger: log, Trace: trace})
	if err != nil {
		return nil, err
	}
	if ruleName != "" {
		if err := engine.UseRule(ruleName); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// runParse parses the input and prints it. It reports whether the input
// matched without a grammar error.
func runParse(ctx context.Context, engine *internal.Engine, input string, stdin io.Reader, out io.Writer) (bool, error) {
	var res internal.Result
	if input == "-" {
		source, err := io.ReadAll(stdin)
		if err != nil {
			return false, fmt.Errorf("error reading stdin: %w", err)
		}
		res = batch.ProcessSources(engine, [][]byte{source})[0]
	} else {
		var err error
		if res, err = engine.Run(input); err != nil {
			return false, err
		}
	}

	if err := printResult(out, res, parseJsonOutput); err != nil {
		return false, err
	}

	if watchFiles && input != "-" {
		return true, watchInput(ctx, engine, input, out)
	}
	return res.Matched && res.Err == nil, nil
}

func printResult(out io.Writer, res internal.Result, isJson bool) error {
	if !isJson {
		_, err := fmt.Fprint(out, internal.FormatResult(res))
		return err
	}
	d, err := internal.FormatJSON([]internal.Result{res})
	if err != nil {
		return fmt.Errorf("error marshalling result to JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(d))
	return err
}

// watchInput reprints the result on every change of path until ctx is
// done or the process is interrupted.
func watchInput(ctx context.Context, engine *internal.Engine, path string, out io.Writer) error {
	report := func(res internal.Result) {
		if err := printResult(out, res, parseJsonOutput); err != nil {
			logger.Error("Error printing result", zap.Error(err))
		}
	}
	if err := engine.StartWatching([]string{path}, report); err != nil {
		return err
	}
	defer func() {
		if err := engine.StopWatching(); err != nil {
			logger.Error("Error stopping watcher", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Watching for changes", zap.String("file", path))
	<-ctx.Done()
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/lifted/grammar"
)

var force bool

// initCmd: lifted init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample grammar file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initGrammarFile(grammarFile, force); err != nil {
			logger.Error("Error initializing grammar file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Grammar file created: %s\n", grammarFile)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing grammar file")
}

// sampleGrammar parses "key: value" lines.
func sampleGrammar() *grammar.Grammar {
	return &grammar.Grammar{
		Name:  "pairs",
		Start: "document",
		Rules: []grammar.Rule{
			{Name: "document", Expr: `many(pair, "\n") "\n"?`, Description: "newline separated pairs"},
			{Name: "pair", Expr: `key chomp(":") chomp(value)`},
			{Name: "key", Expr: `until(": \n")`},
			{Name: "value", Expr: `until("\n")`},
		},
	}
}

func initGrammarFile(path string, force bool) error {
	if path == "" {
		path = "grammar.yaml"
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists", path)
	}

	d, err := sampleGrammar().EncodeYAML()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}

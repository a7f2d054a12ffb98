package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyjs-go/tinyjs/pkg/tinyjs"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a 42TinyJS script file or expression",
	Long: `Execute a 42TinyJS program read from a file or passed inline.

Examples:
  # Run a script file
  tinyjs run script.js

  # Evaluate an inline expression
  tinyjs run -e "console.log(1 + 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	var src, filename string

	switch {
	case evalExpr != "":
		src, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		src = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "running %s\n", filename)
	}

	engine, err := tinyjs.New()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	if err := engine.Execute(src); err != nil {
		writeScriptError(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

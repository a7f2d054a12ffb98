package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "tinyjs",
	Short: "42TinyJS: an embeddable JavaScript-subset interpreter",
	Long: `tinyjs runs scripts against 42TinyJS, an embeddable, single-process,
synchronous, tree-walking interpreter for a JavaScript-like language
(ES5 + an ES6 subset: let/const, arrow functions, destructuring,
template literals, generators).

This CLI exists only to exercise pkg/tinyjs's embedding surface; a
host program links against that package directly and never needs this
binary.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Package commands implements the classgen command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/logger"
)

// NewRootCmd returns the classgen command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "classgen",
		Short: "Generate TypeScript classes from declarative descriptions",
		Long: `classgen - TypeScript class generator.

Class descriptions (YAML, TOML or JSON) are turned into TypeScript modules.
Constructor parameters that only copy into a same-named property become
parameter properties, so "constructor(name: string) { this.name = name; }"
is written as "constructor(public name: string) {}".

Configuration sources (in order of precedence):
1. Environment variables (CLASSGEN_* prefix, e.g. CLASSGEN_OUTPUT_DIR)
2. Project config (classgen.toml, found by walking up from the working directory)
3. Default values

Examples:
  classgen config init          # Write classgen.toml with the defaults
  classgen generate             # Generate from .classgen/ into src/generated/
  classgen check                # Fail if generated files are out of date
  classgen watch                # Regenerate when descriptions change`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			if err := logger.InitializeWithVerbosity(verbosity(cmd), jsonOutput); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json", false, "Print machine-readable JSON and log as JSON")
	root.PersistentFlags().StringP("config", "c", "", "Use this config file instead of searching for "+configFileHint)

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func verbosity(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetCount("verbose")
	return n
}

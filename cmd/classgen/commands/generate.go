package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/classgen/display"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/generate"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate TypeScript modules from class descriptions",
		Long: `Generate TypeScript modules from class descriptions.

Paths may be description files or directories; directories are searched with
the generate.include globs. Without paths, generate.source is used.

Each description becomes <output.dir>/<module><output.extension>, where the
module is the description's path relative to its directory without the
extension. Files whose content would not change are left alone. If
format.command is set it runs once over the written files.

Examples:
  classgen generate                      # Everything under .classgen/
  classgen generate models/ user.yaml    # Specific directories and files
  classgen generate --json               # Machine-readable summary`,
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	runner, err := p.runner(cmd)
	if err != nil {
		return err
	}
	summary, err := runner.Generate(cmd.Context(), args)
	if err != nil {
		return err
	}
	return report(cmd, summary)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that generated modules are up to date",
		Long: `Check that generated modules match their descriptions.

Every description is rendered in memory (and formatted in a scratch
directory when format.command is set) and compared with the file on disk.
Nothing is written.

Exit codes:
  0 - Modules are up to date
  1 - Modules are stale or missing, or a description is invalid

Examples:
  classgen check          # In CI, after classgen generate was run locally`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	runner, err := p.runner(cmd)
	if err != nil {
		return err
	}
	summary, err := runner.Check(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := report(cmd, summary); err != nil {
		return err
	}
	if drifted := summary.Drifted(); len(drifted) > 0 {
		return errors.WithHint(
			errors.Newf("%d of %d generated modules are out of date", len(drifted), len(summary.Results)),
			"run 'classgen generate' to update them",
		)
	}
	return nil
}

// report prints the summary as JSON or as a human-readable list
func report(cmd *cobra.Command, s generate.Summary) error {
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), s)
	}
	display.Report(cmd.OutOrStdout(), s)
	return nil
}

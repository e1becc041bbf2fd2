package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/classgen/config"
	"github.com/teranos/classgen/display"
	"github.com/teranos/classgen/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the classgen configuration",
		Long: `Show or initialise the classgen configuration.

Examples:
  classgen config show                 # Effective configuration as TOML
  classgen config show --format yaml   # ... as YAML
  classgen config show --sources       # Where every value comes from
  classgen config init                 # Write classgen.toml with the defaults`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")
	show.Flags().Bool("sources", false, "List every setting with its source")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write " + config.FileName + " with the default configuration",
		Long: `Write ` + config.FileName + ` with the default configuration to the working directory.

An existing file is kept unless --force is given; with --force it is backed
up to .back1 first (older backups rotate to .back2 and .back3).`,
		RunE: runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if sources, _ := cmd.Flags().GetBool("sources"); sources {
		settings := config.Describe(p.v)
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(out, settings)
		}
		for _, s := range settings {
			origin := string(s.Source)
			if s.SourcePath != "" {
				origin += " " + s.SourcePath
			}
			fmt.Fprintf(out, "%s = %v  %s\n", s.Key, s.Value, pterm.Gray("("+origin+")"))
		}
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}
	switch format {
	case "json":
		return display.OutputJSON(out, p.cfg)
	case "yaml":
		data, err := yaml.Marshal(p.cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# classgen configuration\n%s", data)
	case "toml":
		data, err := config.Marshal(p.cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# classgen configuration\n%s", data)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	path := filepath.Join(cwd, config.FileName)
	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", pterm.LightGreen("✓ Wrote"), path)
	return nil
}

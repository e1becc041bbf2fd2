package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/classgen/config"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/generate"
	"github.com/teranos/classgen/logger"
)

const configFileHint = config.FileName

// project is the configuration in effect for a command and the directory
// its relative paths resolve against
type project struct {
	cfg  *config.Config
	v    *viper.Viper
	root string
}

// loadProject reads --config, or the nearest classgen.toml at or above the
// working directory. Without a file the working directory is the root.
func loadProject(cmd *cobra.Command) (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	var v *viper.Viper
	root := cwd
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if v, err = config.NewViperFromFile(path); err != nil {
			return nil, err
		}
	} else if v, err = config.NewViper(cwd); err != nil {
		return nil, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		abs, err := filepath.Abs(used)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", used)
		}
		root = filepath.Dir(abs)
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Loaded configuration", logger.FieldPath, v.ConfigFileUsed(), logger.FieldComponent, "config")
	return &project{cfg: cfg, v: v, root: root}, nil
}

func (p *project) runner(cmd *cobra.Command) (*generate.Runner, error) {
	r, err := generate.New(p.cfg, p.root)
	if err != nil {
		return nil, err
	}
	r.SetVerbosity(verbosity(cmd))
	return r, nil
}

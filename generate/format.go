package generate

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/classgen/errors"
)

// formatter runs the configured format command over written modules
type formatter struct {
	args []string
}

// newFormatter splits command shell-style. An empty command yields nil: no
// formatting.
func newFormatter(command string) (*formatter, error) {
	if strings.TrimSpace(command) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "invalid format.command %q", command),
			"check the quoting in format.command",
		)
	}
	return &formatter{args: args}, nil
}

func (f *formatter) String() string {
	return shellquote.Join(f.args...)
}

// Run formats files in place with a single invocation; the paths are
// appended to the command's arguments
func (f *formatter) Run(ctx context.Context, dir string, files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append(append([]string(nil), f.args[1:]...), files...)
	cmd := exec.CommandContext(ctx, f.args[0], args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "formatter %s failed", f)
		if msg := strings.TrimSpace(string(out)); msg != "" {
			err = errors.WithDetail(err, msg)
		}
		return err
	}
	return nil
}

// Package hook runs the user command configured to post-process generated
// stub files, such as a formatter.
package hook

import (
	"context"
	"io"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// FilesPlaceholder is replaced by the paths of the generated files
const FilesPlaceholder = "{files}"

// Command is a parsed post-generation command.
type Command struct {
	args []string
}

// Parse splits line with shell quoting rules. An empty line yields a nil
// command.
func Parse(line string) (*Command, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse command %q", line)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return &Command{args: args}, nil
}

// Args returns the command line with every {files} argument expanded.
func (c *Command) Args(files []string) []string {
	out := make([]string, 0, len(c.args)+len(files))
	for _, a := range c.args {
		if a == FilesPlaceholder {
			out = append(out, files...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// Run executes the command in dir. Its output goes to out.
func (c *Command) Run(ctx context.Context, dir string, files []string, out io.Writer) error {
	args := c.Args(files)
	if len(args) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	logger.Debugw("Running post-generation command",
		"command", shellquote.Join(args...),
		logger.FieldPath, dir)
	if err := cmd.Run(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "post-generation command %q failed", shellquote.Join(args...)),
			"check generate.post_command in stubgen.toml")
	}
	return nil
}

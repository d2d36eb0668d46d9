// Package refresh runs an external tool that recomputes document fields
// (table of contents, page references) after a document is written.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// ErrUnavailable is returned when no refresh tool is configured or installed.
var ErrUnavailable = errors.New("field refresh unavailable")

// FilePlaceholder in a command line is replaced by the document path. Without
// it the path is appended as the last argument.
const FilePlaceholder = "{file}"

// Refresher recomputes the fields of a saved document.
type Refresher interface {
	Refresh(ctx context.Context, path string) error
}

// New returns a Refresher for the configured command line. An empty command
// line yields Noop.
func New(commandLine string) (Refresher, error) {
	if strings.TrimSpace(commandLine) == "" {
		return Noop{}, nil
	}
	return NewCommand(commandLine)
}

// Noop reports ErrUnavailable for every document.
type Noop struct{}

func (Noop) Refresh(context.Context, string) error {
	return ErrUnavailable
}

// Command refreshes fields by running an external program, for example
// LibreOffice in headless mode with a field-update macro.
type Command struct {
	name string
	args []string
}

// NewCommand parses a shell-style command line.
func NewCommand(commandLine string) (*Command, error) {
	words, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("parse refresh command %q: %w", commandLine, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("refresh command %q is empty", commandLine)
	}
	return &Command{name: words[0], args: words[1:]}, nil
}

// Args returns the arguments passed for path.
func (c *Command) Args(path string) []string {
	args := make([]string, 0, len(c.args)+1)
	substituted := false
	for _, a := range c.args {
		if strings.Contains(a, FilePlaceholder) {
			a = strings.ReplaceAll(a, FilePlaceholder, path)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, path)
	}
	return args
}

// Refresh runs the command for path. A missing executable is reported as ErrUnavailable.
func (c *Command) Refresh(ctx context.Context, path string) error {
	bin, err := exec.LookPath(c.name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, c.name, err)
	}

	//nolint:gosec // G204: the command comes from the operator's configuration
	out, err := exec.CommandContext(ctx, bin, c.Args(path)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("refresh %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c *Command) String() string {
	return shellquote.Join(append([]string{c.name}, c.args...)...)
}

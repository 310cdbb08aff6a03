package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/tuxedo/lang"
	"github.com/ardnew/tuxedo/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It opens the user's editor on a
// temporary template file holding text, then renders the saved template in
// the session context.
type editCommand struct {
	engine  *lang.Engine
	scope   *lang.Context
	ctxFunc func() context.Context
	logger  log.Logger
	text    string
	output  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run edits and renders the template. A template left empty clears text and
// renders nothing.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "tuxedo-repl-*.template")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	_, err = f.WriteString(c.text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
		return errors.Join(ErrEditorFailed, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c.text = string(data)

	c.logger.TraceContext(
		ctx,
		"editor template read",
		slog.Int("content_length", len(data)),
	)

	if strings.TrimSpace(c.text) == "" {
		c.text = ""

		return nil
	}

	c.output, err = c.engine.RenderContext(ctx, c.text, c.scope)

	return err
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

package translator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
)

type (
	// Shell translates by running an external command, once per call, and
	// blocks until the command exits. It holds no state between calls.
	Shell struct {
		command string
		logger  *log.Logger
	}

	Option func(x *Shell) error
)

func WithCommand(command string) Option {
	return func(x *Shell) error {
		if command == `` {
			return fmt.Errorf(`%w: %s`, ErrInvalidOption, ErrCommandRequired)
		}
		x.command = command
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(x *Shell) error {
		if logger == nil {
			return fmt.Errorf(`%w: nil logger`, ErrInvalidOption)
		}
		x.logger = logger
		return nil
	}
}

func New(options ...Option) (*Shell, error) {
	x := Shell{
		command: DefaultCommand,
		logger:  log.New(io.Discard, ``, 0),
	}
	for _, option := range options {
		if err := option(&x); err != nil {
			return nil, err
		}
	}
	return &x, nil
}

// Command returns the name of the command that will be run.
func (x *Shell) Command() string {
	return x.command
}

// Available reports whether the command can be found on PATH.
func (x *Shell) Available() bool {
	return Which(x.command) != ``
}

// Translate runs the command with the brief flag and the given languages,
// returning stdout split on newlines. A trailing newline yields a trailing
// empty element. Any output on stderr fails the call with an
// *InvocationError, whatever the exit code.
func (x *Shell) Translate(ctx context.Context, text, source, target string) ([]string, error) {
	req := Request{
		Text:    text,
		Source:  source,
		Target:  target,
		Command: x.command,
	}

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
		cmd    = exec.CommandContext(ctx, req.Command, req.Args()...)
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	x.logger.Printf(`running %s -sl=%s -tl=%s (%d bytes)`, req.Command, req.Source, req.Target, len(req.Text))

	err := cmd.Run()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if stderr.Len() != 0 {
		x.logger.Printf(`%s wrote %d bytes to stderr`, req.Command, stderr.Len())
		return nil, &InvocationError{
			Command: req.Command,
			Stderr:  stderr.String(),
		}
	}
	if err != nil {
		// the exit status is not part of the contract, only stderr is
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf(`%s: run %s: %w`, packageName, req.Command, err)
		}
	}

	return strings.Split(stdout.String(), lineSeparator), nil
}

// Package dispatch implements the editor commands: it extracts the selected
// text, hands it to a Translator and echoes the result back to the editor.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	packageName = `dispatch`

	// AdvisoryMessage is echoed instead of translating when the translation
	// command cannot be found.
	AdvisoryMessage = `Translate Shell is required.`

	lineSeparator = "\n"
)

type (
	// Editor is the part of the host editor the commands need.
	Editor interface {
		// CurrentLine returns the line under the cursor.
		CurrentLine() (string, error)
		// BufferLines returns lines [start, end) of the current buffer, zero
		// based.
		BufferLines(start, end int) ([]string, error)
		// Echo shows msg in the message area. msg is passed as-is, it is
		// never interpreted as editor command syntax.
		Echo(msg string) error
	}

	Translator interface {
		Available() bool
		Translate(ctx context.Context, text, source, target string) ([]string, error)
	}

	// Range is the line range the host passed to a command, as one based
	// line numbers.
	Range struct {
		Start int
		End   int
	}

	Direction struct {
		// Name is the editor command name.
		Name   string
		Source string
		Target string
	}

	Dispatcher struct {
		editor     Editor
		translator Translator
		logger     *log.Logger
	}

	Option func(x *Dispatcher) error
)

var (
	EnToJa = Direction{Name: `TransEn2Ja`, Source: `en`, Target: `ja`}
	JaToEn = Direction{Name: `TransJa2En`, Source: `ja`, Target: `en`}

	ErrInvalidOption = errors.New(packageName + `: invalid option`)
)

// Directions returns every direction that is exposed as a command.
func Directions() []Direction {
	return []Direction{EnToJa, JaToEn}
}

func WithLogger(logger *log.Logger) Option {
	return func(x *Dispatcher) error {
		if logger == nil {
			return fmt.Errorf(`%w: nil logger`, ErrInvalidOption)
		}
		x.logger = logger
		return nil
	}
}

func New(editor Editor, translator Translator, options ...Option) (*Dispatcher, error) {
	if editor == nil {
		return nil, fmt.Errorf(`%w: editor required`, ErrInvalidOption)
	}
	if translator == nil {
		return nil, fmt.Errorf(`%w: translator required`, ErrInvalidOption)
	}
	x := Dispatcher{
		editor:     editor,
		translator: translator,
		logger:     log.New(io.Discard, ``, 0),
	}
	for _, option := range options {
		if err := option(&x); err != nil {
			return nil, err
		}
	}
	return &x, nil
}

// Lines returns the text selected by r.
//
// When r.Start == r.End the range is not used at all, and the editor's
// current line is returned instead, so a one line selection and no selection
// both mean "the line under the cursor". Otherwise lines r.Start through
// r.End-1 are joined with newlines.
func Lines(editor Editor, r Range) (string, error) {
	if r.Start == r.End {
		return editor.CurrentLine()
	}
	lines, err := editor.BufferLines(r.Start-1, r.End-1)
	if err != nil {
		return ``, err
	}
	return strings.Join(lines, lineSeparator), nil
}

// Run translates the text in r using d, and echoes the result. If the
// translator is unavailable the advisory message is echoed instead, and nil
// is returned. Translation errors are returned as-is.
func (x *Dispatcher) Run(ctx context.Context, d Direction, r Range) error {
	text, err := Lines(x.editor, r)
	if err != nil {
		return err
	}

	if !x.translator.Available() {
		x.logger.Printf(`%s: translator unavailable`, d.Name)
		return x.editor.Echo(AdvisoryMessage)
	}

	lines, err := x.translator.Translate(ctx, text, d.Source, d.Target)
	if err != nil {
		x.logger.Printf(`%s: %v`, d.Name, err)
		return err
	}

	x.logger.Printf(`%s: lines %d-%d translated`, d.Name, r.Start, r.End)

	return x.editor.Echo(strings.Join(lines, lineSeparator))
}

// Forward translates from English to Japanese.
func (x *Dispatcher) Forward(ctx context.Context, r Range) error {
	return x.Run(ctx, EnToJa, r)
}

// Reverse translates from Japanese to English.
func (x *Dispatcher) Reverse(ctx context.Context, r Range) error {
	return x.Run(ctx, JaToEn, r)
}

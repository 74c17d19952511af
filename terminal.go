package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/nvim-trans/dispatch"
	"golang.org/x/text/language"
)

type (
	// terminalEditor is a dispatch.Editor with a single line and no buffer,
	// which echoes to a writer.
	terminalEditor struct {
		line   string
		writer io.Writer
	}
)

var errNoBuffer = errors.New(appName + `: no buffer`)

func (x *terminalEditor) CurrentLine() (string, error) {
	return x.line, nil
}

func (x *terminalEditor) BufferLines(start, end int) ([]string, error) {
	return nil, errNoBuffer
}

func (x *terminalEditor) Echo(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, err := io.WriteString(x.writer, msg)
	return err
}

// findDirection matches the base languages of source and target against the
// supported directions, so e.g. "EN" or "en-GB" both select English.
func findDirection(source, target string) (dispatch.Direction, error) {
	sourceBase, err := baseLanguage(source)
	if err != nil {
		return dispatch.Direction{}, err
	}
	targetBase, err := baseLanguage(target)
	if err != nil {
		return dispatch.Direction{}, err
	}
	for _, direction := range dispatch.Directions() {
		if direction.Source == sourceBase && direction.Target == targetBase {
			return direction, nil
		}
	}
	return dispatch.Direction{}, fmt.Errorf(`unsupported direction: %s to %s`, source, target)
}

func baseLanguage(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return ``, fmt.Errorf(`invalid language %q: %w`, code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Package translator runs Translate Shell (or a compatible CLI) as a child
// process and returns its output as lines.
package translator

import (
	"context"
	"os/exec"
)

const (
	DefaultCommand = `trans`
	DefaultSource  = `en`
	DefaultTarget  = `ja`

	lineSeparator = "\n"
)

type (
	// Request is a single, immutable translation request.
	Request struct {
		Text    string
		Source  string
		Target  string
		Command string
	}
)

// Which returns name if an executable with that name can be found on PATH,
// otherwise the empty string.
func Which(name string) string {
	if name == `` {
		return ``
	}
	if _, err := exec.LookPath(name); err != nil {
		return ``
	}
	return name
}

// NewRequest returns a Request for text with the default direction (en to ja)
// and command.
func NewRequest(text string) Request {
	return Request{
		Text:    text,
		Source:  DefaultSource,
		Target:  DefaultTarget,
		Command: DefaultCommand,
	}
}

// Args returns the arguments passed to the command, not including the
// command itself.
func (x Request) Args() []string {
	return []string{
		`-b`,
		`-sl=` + x.Source,
		`-tl=` + x.Target,
		x.Text,
	}
}

// Translate runs req against its own command, see Shell.Translate.
func Translate(ctx context.Context, req Request) ([]string, error) {
	shell, err := New(WithCommand(req.Command))
	if err != nil {
		return nil, err
	}
	return shell.Translate(ctx, req.Text, req.Source, req.Target)
}

package dispatch

import (
	"context"

	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

type (
	// NvimEditor adapts a Neovim RPC client to Editor.
	NvimEditor struct {
		v *nvim.Nvim
	}
)

var _ Editor = (*NvimEditor)(nil)

func NewEditor(v *nvim.Nvim) *NvimEditor {
	return &NvimEditor{v: v}
}

func (x *NvimEditor) CurrentLine() (string, error) {
	line, err := x.v.CurrentLine()
	if err != nil {
		return ``, err
	}
	return string(line), nil
}

func (x *NvimEditor) BufferLines(start, end int) ([]string, error) {
	buffer, err := x.v.CurrentBuffer()
	if err != nil {
		return nil, err
	}
	raw, err := x.v.BufferLines(buffer, start, end, true)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = string(line)
	}
	return lines, nil
}

// Echo uses nvim_echo, the message is sent as a text chunk, and kept in the
// message history.
func (x *NvimEditor) Echo(msg string) error {
	return x.v.Echo([]nvim.TextChunk{{Text: msg}}, true, map[string]interface{}{})
}

// Register defines one user command per Direction on p. Each command accepts
// a range (defaulting to the current line) and any number of arguments,
// which are ignored.
func Register(p *plugin.Plugin, translator Translator, options ...Option) error {
	dispatcher, err := New(NewEditor(p.Nvim), translator, options...)
	if err != nil {
		return err
	}
	for _, direction := range Directions() {
		direction := direction
		p.HandleCommand(
			&plugin.CommandOptions{
				Name:  direction.Name,
				NArgs: `*`,
				Range: `.`,
			},
			func(args []string, r [2]int) error {
				return dispatcher.Run(context.Background(), direction, Range{Start: r[0], End: r[1]})
			},
		)
	}
	return nil
}

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/neovim/go-client/nvim/plugin"
)

type fakeEditor struct {
	current string
	buffer  []string
	echoes  []string
}

func (x *fakeEditor) CurrentLine() (string, error) {
	return x.current, nil
}

func (x *fakeEditor) BufferLines(start, end int) ([]string, error) {
	if start < 0 || end > len(x.buffer) || start > end {
		return nil, fmt.Errorf(`index out of bounds: [%d:%d]`, start, end)
	}
	return x.buffer[start:end], nil
}

func (x *fakeEditor) Echo(msg string) error {
	x.echoes = append(x.echoes, msg)
	return nil
}

// mapTranslator translates each line of text by lookup, and records calls.
type mapTranslator struct {
	unavailable bool
	err         error
	values      map[string]string
	calls       []string
}

func (x *mapTranslator) Available() bool {
	return !x.unavailable
}

func (x *mapTranslator) Translate(ctx context.Context, text, source, target string) ([]string, error) {
	x.calls = append(x.calls, source+`>`+target+`:`+text)
	if x.err != nil {
		return nil, x.err
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if v, ok := x.values[line]; ok {
			line = v
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestLines(t *testing.T) {
	for _, tc := range [...]struct {
		Name   string
		Editor *fakeEditor
		Range  Range
		Output string
		Err    bool
	}{
		{
			Name:   `same start and end uses current line`,
			Editor: &fakeEditor{current: `hello`, buffer: []string{`0`, `1`, `2`, `3`, `4`, `5`, `6`}},
			Range:  Range{Start: 5, End: 5},
			Output: `hello`,
		},
		{
			Name:   `current line ignores out of range indices`,
			Editor: &fakeEditor{current: `hello`},
			Range:  Range{Start: 99, End: 99},
			Output: `hello`,
		},
		{
			Name:   `multiple lines`,
			Editor: &fakeEditor{current: `x`, buffer: []string{`a`, `b`, `c`, `d`}},
			Range:  Range{Start: 2, End: 4},
			Output: "b\nc",
		},
		{
			Name:   `two line selection yields one line`,
			Editor: &fakeEditor{current: `x`, buffer: []string{`a`, `b`, `c`, `d`}},
			Range:  Range{Start: 1, End: 2},
			Output: `a`,
		},
		{
			Name:   `buffer error`,
			Editor: &fakeEditor{buffer: []string{`a`}},
			Range:  Range{Start: 1, End: 5},
			Err:    true,
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			output, err := Lines(tc.Editor, tc.Range)
			if (err != nil) != tc.Err {
				t.Fatal(err)
			}
			if output != tc.Output {
				t.Errorf(`expected %q got %q`, tc.Output, output)
			}
		})
	}
}

func TestDispatcher_Forward(t *testing.T) {
	var (
		editor     = &fakeEditor{current: `こんにちは`, buffer: []string{`a`, `b`, `c`, `d`}}
		translator = &mapTranslator{values: map[string]string{`こんにちは`: `hello`}}
	)
	dispatcher, err := New(editor, translator)
	if err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Forward(context.Background(), Range{Start: 3, End: 3}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(editor.echoes, []string{`hello`}) {
		t.Errorf(`%q`, editor.echoes)
	}
	if !reflect.DeepEqual(translator.calls, []string{`en>ja:こんにちは`}) {
		t.Errorf(`%q`, translator.calls)
	}
}

func TestDispatcher_Reverse(t *testing.T) {
	var (
		editor     = &fakeEditor{buffer: []string{`一`, `二`, `三`}}
		translator = &mapTranslator{values: map[string]string{`一`: `one`, `二`: `two`}}
	)
	dispatcher, err := New(editor, translator)
	if err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Reverse(context.Background(), Range{Start: 1, End: 3}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(editor.echoes, []string{"one\ntwo"}) {
		t.Errorf(`%q`, editor.echoes)
	}
	if !reflect.DeepEqual(translator.calls, []string{"ja>en:一\n二"}) {
		t.Errorf(`%q`, translator.calls)
	}
}

func TestDispatcher_Reverse_unavailable(t *testing.T) {
	var (
		editor     = &fakeEditor{current: `hello`}
		translator = &mapTranslator{unavailable: true}
	)
	dispatcher, err := New(editor, translator)
	if err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Reverse(context.Background(), Range{Start: 1, End: 1}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(editor.echoes, []string{AdvisoryMessage}) {
		t.Errorf(`%q`, editor.echoes)
	}
	if len(translator.calls) != 0 {
		t.Errorf(`unexpected calls: %q`, translator.calls)
	}
}

func TestDispatcher_Run_translateError(t *testing.T) {
	var (
		expected   = errors.New(`some stderr text`)
		editor     = &fakeEditor{current: `hello`}
		translator = &mapTranslator{err: expected}
		logs       bytes.Buffer
	)
	dispatcher, err := New(editor, translator, WithLogger(log.New(&logs, ``, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Run(context.Background(), EnToJa, Range{}); err != expected {
		t.Fatal(err)
	}
	if len(editor.echoes) != 0 {
		t.Errorf(`%q`, editor.echoes)
	}
	if !strings.Contains(logs.String(), `TransEn2Ja: some stderr text`) {
		t.Error(logs.String())
	}
}

func TestDispatcher_Run_quotesEchoedVerbatim(t *testing.T) {
	var (
		message    = `it's a "test" | echo 'x'`
		editor     = &fakeEditor{current: `input`}
		translator = &mapTranslator{values: map[string]string{`input`: message}}
	)
	dispatcher, err := New(editor, translator)
	if err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Forward(context.Background(), Range{Start: 1, End: 1}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(editor.echoes, []string{message}) {
		t.Errorf(`%q`, editor.echoes)
	}
}

func TestNew_invalidOption(t *testing.T) {
	for _, tc := range [...]struct {
		Name       string
		Editor     Editor
		Translator Translator
		Options    []Option
	}{
		{Name: `nil editor`, Translator: &mapTranslator{}},
		{Name: `nil translator`, Editor: &fakeEditor{}},
		{Name: `nil logger`, Editor: &fakeEditor{}, Translator: &mapTranslator{}, Options: []Option{WithLogger(nil)}},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			dispatcher, err := New(tc.Editor, tc.Translator, tc.Options...)
			if !errors.Is(err, ErrInvalidOption) || dispatcher != nil {
				t.Error(dispatcher, err)
			}
		})
	}
}

func TestRegister_manifest(t *testing.T) {
	p := plugin.New(nil)
	if err := Register(p, &mapTranslator{}); err != nil {
		t.Fatal(err)
	}
	manifest := p.Manifest(`nvim-trans`)
	for _, direction := range Directions() {
		if !bytes.Contains(manifest, []byte(direction.Name)) {
			t.Errorf("missing %s in manifest:\n%s", direction.Name, manifest)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joeycumines/nvim-trans/dispatch"
	"github.com/joeycumines/nvim-trans/translator"
	"github.com/neovim/go-client/nvim/plugin"
	"github.com/urfave/cli/v2"
)

const (
	appName = `nvim-trans`
)

type (
	Command struct {
		Config struct {
			Command  string
			LogFile  string
			Manifest string
			Location string
			Source   string
			Target   string
		}
		logger *log.Logger
	}
)

func main() {
	command := Command{}

	app := cli.App{
		Name:      appName,
		Usage:     "neovim remote plugin that translates lines with translate shell",
		UsageText: appName + " [global options] [command [command options] [arguments...]]",
		Flags:     command.Flags(),
		Before:    command.Before,
		Action:    command.Action,
		Commands: []*cli.Command{
			{
				Name:      `translate`,
				Usage:     `translate the arguments and print the result`,
				ArgsUsage: `text...`,
				Flags:     command.TranslateFlags(),
				Action:    command.TranslateAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func (x *Command) Flags() (flags []cli.Flag) {
	flags = append(
		flags,
		&cli.StringFlag{
			Name:        `command`,
			Usage:       `translation command to run, must accept translate shell's -b -sl -tl flags`,
			EnvVars:     []string{`NVIM_TRANS_COMMAND`},
			Value:       translator.DefaultCommand,
			Destination: &x.Config.Command,
		},
		&cli.StringFlag{
			Name:        `log-file`,
			Usage:       `append logs to this file instead of stderr`,
			EnvVars:     []string{`NVIM_TRANS_LOG_FILE`},
			Destination: &x.Config.LogFile,
		},
		&cli.StringFlag{
			Name:        `manifest`,
			Usage:       "write the plugin manifest for `host` and exit",
			Destination: &x.Config.Manifest,
		},
		&cli.StringFlag{
			Name:        `location`,
			Usage:       "write the manifest to this `.vim file` instead of stdout",
			Destination: &x.Config.Location,
		},
	)

	return
}

func (x *Command) TranslateFlags() (flags []cli.Flag) {
	flags = append(
		flags,
		&cli.StringFlag{
			Name:        `sl`,
			Usage:       `source language`,
			Value:       translator.DefaultSource,
			Destination: &x.Config.Source,
		},
		&cli.StringFlag{
			Name:        `tl`,
			Usage:       `target language`,
			Value:       translator.DefaultTarget,
			Destination: &x.Config.Target,
		},
	)

	return
}

func (x *Command) Before(c *cli.Context) error {
	var writer io.Writer = os.Stderr
	if x.Config.LogFile != `` {
		file, err := os.OpenFile(x.Config.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		writer = file
	}
	x.logger = log.New(writer, appName+`: `, log.LstdFlags)
	return nil
}

// Action serves the plugin to neovim over stdio, or writes the manifest if
// requested.
func (x *Command) Action(c *cli.Context) error {
	if n := c.NArg(); n != 0 {
		return fmt.Errorf(`invalid number of args: %d`, n)
	}

	if x.Config.Manifest != `` {
		return writeManifest(x.Config.Manifest, x.Config.Location, x.register)
	}

	if x.Config.Location != `` {
		return fmt.Errorf(`location requires manifest`)
	}

	return serve(x.logger, x.register)
}

// TranslateAction runs a single translation from the command line, through
// the same dispatcher the editor commands use.
func (x *Command) TranslateAction(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), ` `)
	if text == `` {
		return fmt.Errorf(`no text to translate`)
	}

	direction, err := findDirection(x.Config.Source, x.Config.Target)
	if err != nil {
		return err
	}

	shell, err := x.shell()
	if err != nil {
		return err
	}

	dispatcher, err := dispatch.New(
		&terminalEditor{line: text, writer: c.App.Writer},
		shell,
		dispatch.WithLogger(x.logger),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return dispatcher.Run(ctx, direction, dispatch.Range{})
}

func (x *Command) shell() (*translator.Shell, error) {
	return translator.New(
		translator.WithCommand(x.Config.Command),
		translator.WithLogger(x.logger),
	)
}

func (x *Command) register(p *plugin.Plugin) error {
	shell, err := x.shell()
	if err != nil {
		return err
	}
	return dispatch.Register(p, shell, dispatch.WithLogger(x.logger))
}

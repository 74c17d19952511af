package main

import (
	"log"
	"os"

	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

// serve connects to neovim over stdin and stdout, registers the plugin, and
// blocks until neovim closes the connection.
func serve(logger *log.Logger, register func(p *plugin.Plugin) error) error {
	// stdout is the RPC channel, anything else printed would corrupt it
	stdout := os.Stdout
	os.Stdout = os.Stderr

	v, err := nvim.New(os.Stdin, stdout, stdout, logger.Printf)
	if err != nil {
		return err
	}

	if err := register(plugin.New(v)); err != nil {
		return err
	}

	logger.Println(`serving`)

	return v.Serve()
}

// writeManifest writes the remote plugin manifest for host, to location if
// set, otherwise to stdout.
func writeManifest(host, location string, register func(p *plugin.Plugin) error) error {
	p := plugin.New(nil)
	if err := register(p); err != nil {
		return err
	}

	manifest := p.Manifest(host)

	if location == `` {
		_, err := os.Stdout.Write(manifest)
		return err
	}

	return os.WriteFile(location, manifest, 0644)
}

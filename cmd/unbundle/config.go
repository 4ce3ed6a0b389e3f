package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/unbundle/bundle"
	"github.com/wippyai/unbundle/js"
)

// config holds the file-configurable defaults; flags override it.
type config struct {
	Out     string        `toml:"out"`
	Verbose bool          `toml:"verbose"`
	Printer printerConfig `toml:"printer"`
}

type printerConfig struct {
	ASCIIOnly             *bool `toml:"ascii_only"`
	BracketizeBlocks      *bool `toml:"bracketize_blocks"`
	DeclaratorsOnePerLine *bool `toml:"declarators_one_per_line"`
}

// loadConfig reads the TOML config at path. With an empty path it falls
// back to unbundle.toml in the working directory if present, otherwise
// returns defaults.
func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		if _, err := os.Stat("unbundle.toml"); err != nil {
			return cfg, nil
		}
		path = "unbundle.toml"
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// options builds printer options from the defaults plus any explicit
// overrides in the config file.
func (c *config) options() js.Options {
	opts := bundle.DefaultOptions()
	if c.Printer.ASCIIOnly != nil {
		opts.ASCIIOnly = *c.Printer.ASCIIOnly
	}
	if c.Printer.BracketizeBlocks != nil {
		opts.BracketizeBlocks = *c.Printer.BracketizeBlocks
	}
	if c.Printer.DeclaratorsOnePerLine != nil {
		opts.DeclaratorsOnePerLine = *c.Printer.DeclaratorsOnePerLine
	}
	return opts
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/unbundle/bundle"
)

func main() {
	var (
		outDir      = flag.String("out", "", "Directory to write extracted modules (default: stdout)")
		configFile  = flag.String("config", "", "Path to TOML config file")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: unbundle [-out dir] <bundle.js> [bundle2.js ...]")
		fmt.Fprintln(os.Stderr, "       unbundle -i <bundle.js>  (interactive mode)")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Out = *outDir
	}
	if *verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			bundle.SetLogger(log)
			defer log.Sync()
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: interactive mode takes exactly one bundle")
			os.Exit(1)
		}
		if err := runInteractive(flag.Arg(0), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	failed := 0
	for _, file := range flag.Args() {
		if err := run(file, cfg, flag.NArg() > 1); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", file, err)
			failed++
		}
	}
	if failed == flag.NArg() {
		os.Exit(1)
	}
}

// run processes one bundle. With multiple inputs each bundle gets its
// own subdirectory under the output directory, named after the input,
// so their main.js files do not collide.
func run(file string, cfg *config, multi bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	out := cfg.Out
	if multi && out != "" {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		out = filepath.Join(out, base)
	}

	em := &bundle.Emitter{
		OutDir:  out,
		Options: cfg.options(),
	}
	diags, err := bundle.Unbundle(string(data), file, em)
	if err != nil {
		return err
	}

	for _, warn := range diags.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", file, warn)
	}
	return nil
}

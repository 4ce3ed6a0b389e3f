package bundle

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

// DefaultOptions is the printer configuration used for emitted modules:
// readable, portable output regardless of how the bundle was minified.
func DefaultOptions() js.Options {
	return js.Options{
		ASCIIOnly:             true,
		BracketizeBlocks:      true,
		DeclaratorsOnePerLine: true,
	}
}

// Emitter writes reconstructed modules out, one file per canonical
// name. With an empty OutDir the modules are concatenated to Stdout
// instead, separated by a comment header naming each module.
type Emitter struct {
	OutDir  string
	Stdout  io.Writer
	Options js.Options
}

// Emit normalizes and prints every module of an extraction in order,
// then reports the run's accumulated diagnostics through the package
// logger. The first write failure aborts the run.
func (em *Emitter) Emit(ext *Extraction, diags *Diagnostics) error {
	opts := em.Options
	if opts.Rename == nil {
		opts.Rename = ext.Rename
	}

	if em.OutDir != "" {
		if err := os.MkdirAll(em.OutDir, 0o755); err != nil {
			return errors.WriteFailed(em.OutDir, err)
		}
	}

	log := Logger()
	for _, mod := range ext.Modules {
		Normalize(mod)
		src := js.Print(&js.Program{Body: mod.Body}, opts)

		if em.OutDir == "" {
			if err := em.writeStdout(mod.Name, src); err != nil {
				return err
			}
			continue
		}

		out := filepath.Join(em.OutDir, mod.Name+".js")
		if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
			return errors.WriteFailed(out, err)
		}
		log.Info("wrote module",
			zap.String("file", out),
			zap.Int("ids", len(mod.IDs)))
	}

	for _, warn := range diags.Warnings() {
		log.Warn("bundle diagnostic",
			zap.String("phase", string(warn.Phase)),
			zap.String("kind", string(warn.Kind)),
			zap.String("detail", warn.Detail))
	}
	return nil
}

func (em *Emitter) writeStdout(name, src string) error {
	w := em.Stdout
	if w == nil {
		w = os.Stdout
	}
	if _, err := io.WriteString(w, "// module: "+name+".js\n"+src+"\n"); err != nil {
		return errors.WriteFailed(name+".js", err)
	}
	return nil
}

// Unbundle runs the full pipeline on one bundle: parse, locate the
// invocation, decode the module table, assign canonical names, extract
// and rewrite the modules, and emit them through em. The returned
// diagnostics carry every non-fatal finding of the run.
func Unbundle(src, file string, em *Emitter) (*Diagnostics, error) {
	diags := &Diagnostics{}

	prog, err := js.Parse(src, file)
	if err != nil {
		return diags, errors.Syntax(file, err)
	}
	js.ResolveScopes(prog)

	call, err := Locate(prog, file, diags)
	if err != nil {
		return diags, err
	}
	table, err := ReadTable(call, file)
	if err != nil {
		return diags, err
	}

	reg := BuildRegistry(table, diags)
	ext, err := Extract(table, reg, diags)
	if err != nil {
		return diags, err
	}

	return diags, em.Emit(ext, diags)
}

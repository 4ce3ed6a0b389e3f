package bundle

import (
	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

// paramRoles names the positional parameters of every module function.
var paramRoles = []string{"require", "module", "exports", "moduleSource", "loadedModules", "mainIds"}

// Module is the accumulation target for one canonical name: the merged
// statement bodies of every table entry the registry maps to that name.
type Module struct {
	Name string
	Body []js.Stmt
	IDs  []ModuleID
}

// Extraction is the result of splitting a bundle: the reconstructed
// modules in registry assignment order, plus the display-name overrides
// the printer needs for canonicalized parameters.
type Extraction struct {
	Modules []*Module
	Rename  map[*js.Binding]string

	byName map[string]*Module
}

// Module returns the canonical module with the given name.
func (e *Extraction) Module(name string) (*Module, bool) {
	m, ok := e.byName[name]
	return m, ok
}

// Extract walks the module table in order and produces one Module per
// canonical name. Each module function's parameters are canonicalized to
// the fixed roles via the rename table, its require calls are rewritten
// to canonical relative paths, and its body is appended to the module
// for its name. Distinct ids sharing a name merge in table order and are
// flagged with a diagnostic.
func Extract(table *Table, reg *Registry, diags *Diagnostics) (*Extraction, error) {
	ext := &Extraction{
		Rename: make(map[*js.Binding]string),
		byName: make(map[string]*Module),
	}

	for _, entry := range table.Entries {
		name, ok := reg.Name(entry.ID)
		if !ok {
			// BuildRegistry names every table id; a miss is a programming error.
			return nil, errors.New(errors.PhaseExtract, errors.KindInvalidShape).
				Path("moduleTable", string(entry.ID)).
				Detail("module id missing from registry").
				Build()
		}

		mapping := make(map[string]string, len(entry.Requires))
		for _, req := range entry.Requires {
			if target, ok := reg.Name(req.Target); ok {
				mapping[Stem(req.Local)] = target
			}
		}

		canonicalizeParams(entry.Fn, ext.Rename)
		rewriteRequires(entry.Fn, mapping)

		mod, ok := ext.byName[name]
		if !ok {
			mod = &Module{Name: name}
			ext.byName[name] = mod
			ext.Modules = append(ext.Modules, mod)
		}
		mod.Body = append(mod.Body, entry.Fn.Body...)
		mod.IDs = append(mod.IDs, entry.ID)

		if len(mod.IDs) == 2 {
			ids := make([]string, len(mod.IDs))
			for i, id := range mod.IDs {
				ids[i] = string(id)
			}
			diags.Add(errors.MergedModules(name, ids))
		}
	}

	return ext, nil
}

// canonicalizeParams records a display-name override for every
// positional parameter whose declared name differs from its role.
// Parameters already matching their role get no entry, so a second pass
// is a no-op.
func canonicalizeParams(fn *js.FuncLit, rename map[*js.Binding]string) {
	for i, param := range fn.Params {
		if i >= len(paramRoles) {
			break
		}
		if param.Name != paramRoles[i] && param.Binding != nil {
			rename[param.Binding] = paramRoles[i]
		}
	}
}

// rewriteRequires rewrites the argument of every require call whose stem
// the mapping knows to the canonical ./<name>.js path. The callee is
// matched by binding identity against the function's first parameter, so
// minified names and aliases are immaterial; unknown stems are left
// untouched.
func rewriteRequires(fn *js.FuncLit, mapping map[string]string) {
	var requireBinding *js.Binding
	if len(fn.Params) > 0 {
		requireBinding = fn.Params[0].Binding
	}

	js.Walk(fn, func(n js.Node) bool {
		call, ok := n.(*js.CallExpr)
		if !ok || call.New || len(call.Args) != 1 {
			return true
		}
		callee, ok := call.Callee.(*js.Ident)
		if !ok {
			return true
		}
		switch {
		case requireBinding != nil && callee.Binding == requireBinding:
		case callee.Name == "require" &&
			(callee.Binding == nil || callee.Binding.Kind == js.BindUnresolved):
			// A bare require with no local binding still counts; a
			// shadowing declaration does not.
		default:
			return true
		}
		lit, ok := call.Args[0].(*js.StringLit)
		if !ok {
			return true
		}
		if target, ok := mapping[Stem(lit.Value)]; ok {
			lit.Value = "./" + target + ".js"
		}
		return true
	})
}

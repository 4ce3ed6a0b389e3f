package bundle

import (
	"strconv"

	"github.com/wippyai/unbundle/errors"
	"github.com/wippyai/unbundle/js"
)

// ModuleID is the opaque identity of a module table key. Numeric and
// string keys are both carried as their source spelling; ids are only
// ever compared for equality.
type ModuleID string

// RequirePair is one entry of a module's require mapping: the path the
// module was required as, and the id it resolves to.
type RequirePair struct {
	Local  string
	Target ModuleID
}

// Entry is one module table entry: the module function and its require
// mapping, in source order.
type Entry struct {
	ID       ModuleID
	Fn       *js.FuncLit
	Requires []RequirePair
}

// Table is the decoded bundle invocation: the module table in source
// order plus the entry-point ids.
type Table struct {
	Entries []Entry
	MainIDs []ModuleID
}

// ReadTable decodes the three arguments of the bundle invocation. The
// first must be an object literal mapping ids to [function, mapping]
// entries, the third an array literal of ids; shape mismatches abort the
// file with an invalid-shape error.
func ReadTable(call *js.CallExpr, file string) (*Table, error) {
	if len(call.Args) < 1 {
		return nil, errors.InvalidShape(file, nil, "bundle invocation has no arguments")
	}
	tableLit, ok := call.Args[0].(*js.ObjectLit)
	if !ok {
		return nil, errors.InvalidShape(file, []string{"arg0"},
			"module table is "+call.Args[0].Variant()+", want object literal")
	}

	table := &Table{}
	for _, prop := range tableLit.Props {
		id := ModuleID(prop.Key)
		entry, err := readEntry(id, prop.Value, file)
		if err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, entry)
	}

	if len(call.Args) >= 3 {
		mains, ok := call.Args[2].(*js.ArrayLit)
		if !ok {
			return nil, errors.InvalidShape(file, []string{"arg2"},
				"main-id list is "+call.Args[2].Variant()+", want array literal")
		}
		for i, el := range mains.Elems {
			id, ok := literalID(el)
			if !ok {
				return nil, errors.UnexpectedVariant(errors.PhaseExtract,
					[]string{"mainIds", strconv.Itoa(i)}, el.Variant(), "string or number literal")
			}
			table.MainIDs = append(table.MainIDs, id)
		}
	}

	return table, nil
}

func readEntry(id ModuleID, value js.Expr, file string) (Entry, error) {
	path := []string{"moduleTable", string(id)}
	arr, ok := value.(*js.ArrayLit)
	if !ok {
		return Entry{}, errors.InvalidShape(file, path,
			"entry is "+value.Variant()+", want two-element array")
	}
	if len(arr.Elems) < 2 {
		return Entry{}, errors.InvalidShape(file, path,
			"entry has "+strconv.Itoa(len(arr.Elems))+" element(s), want 2")
	}
	fn, ok := arr.Elems[0].(*js.FuncLit)
	if !ok {
		return Entry{}, errors.UnexpectedVariant(errors.PhaseExtract,
			append(path, "0"), arr.Elems[0].Variant(), "function expression")
	}
	mapping, ok := arr.Elems[1].(*js.ObjectLit)
	if !ok {
		return Entry{}, errors.UnexpectedVariant(errors.PhaseExtract,
			append(path, "1"), arr.Elems[1].Variant(), "object literal")
	}

	entry := Entry{ID: id, Fn: fn}
	for _, prop := range mapping.Props {
		target, ok := literalID(prop.Value)
		if !ok {
			return Entry{}, errors.UnexpectedVariant(errors.PhaseExtract,
				append(path, "1", prop.Key), prop.Value.Variant(), "string or number literal")
		}
		entry.Requires = append(entry.Requires, RequirePair{Local: prop.Key, Target: target})
	}
	return entry, nil
}

// literalID extracts a module id from a string or number literal,
// preserving the source spelling so it matches table keys.
func literalID(e js.Expr) (ModuleID, bool) {
	switch e := e.(type) {
	case *js.StringLit:
		return ModuleID(e.Value), true
	case *js.NumberLit:
		if e.Raw != "" {
			return ModuleID(e.Raw), true
		}
		return ModuleID(strconv.FormatFloat(e.Value, 'g', -1, 64)), true
	}
	return "", false
}

package bundle

import (
	"path"
	"strings"

	"github.com/wippyai/unbundle/errors"
)

// MainName is the reserved canonical name given to entry-point modules.
const MainName = "main"

// Registry maps module ids to canonical output names. Assignment is
// first-writer-wins in module table iteration order, so the mapping is
// deterministic for a given bundle.
type Registry struct {
	names map[ModuleID]string
	lower map[string]ModuleID
	order []ModuleID
}

// BuildRegistry assigns a canonical name to every id in the table.
// Entry-point ids are named main first; then every require mapping names
// its target after the required path's stem. Ids nothing requires fall
// back to module_<id>. A later stem that differs from an id's existing
// name is reported as a conflict diagnostic and ignored, and names that
// collide case-insensitively across different ids are reported too,
// since they would overwrite each other on case-insensitive filesystems.
func BuildRegistry(table *Table, diags *Diagnostics) *Registry {
	r := &Registry{
		names: make(map[ModuleID]string),
		lower: make(map[string]ModuleID),
	}

	for _, id := range table.MainIDs {
		r.assign(id, MainName, diags)
	}

	for _, entry := range table.Entries {
		for _, req := range entry.Requires {
			r.assign(req.Target, Stem(req.Local), diags)
		}
	}

	for _, entry := range table.Entries {
		if _, ok := r.names[entry.ID]; !ok {
			r.assign(entry.ID, "module_"+sanitize(string(entry.ID)), diags)
		}
	}

	return r
}

// assign records name for id unless id already has one; first writer
// wins and later differing names become diagnostics.
func (r *Registry) assign(id ModuleID, name string, diags *Diagnostics) {
	if existing, ok := r.names[id]; ok {
		if existing != name {
			diags.Add(errors.NameConflict(string(id), existing, name))
		}
		return
	}

	folded := strings.ToLower(name)
	if prior, ok := r.lower[folded]; ok && r.names[prior] != name {
		diags.Add(errors.NameConflict(string(id), r.names[prior], name))
	} else if !ok {
		r.lower[folded] = id
	}

	r.names[id] = name
	r.order = append(r.order, id)
}

// Name returns the canonical name for id.
func (r *Registry) Name(id ModuleID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// IDs returns every registered id in assignment order.
func (r *Registry) IDs() []ModuleID {
	return r.order
}

// Stem derives a canonical name from a required path: the final path
// element with a .js suffix stripped.
func Stem(local string) string {
	base := path.Base(local)
	return strings.TrimSuffix(base, ".js")
}

// sanitize keeps fallback names filesystem-safe.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

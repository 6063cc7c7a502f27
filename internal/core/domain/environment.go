package domain

import (
	"maps"
	"slices"
	"strings"
)

// Environment is an immutable set of environment variables.
// Every modifying method returns a new value and leaves the receiver untouched.
type Environment struct {
	vars map[string]string
}

// NewEnvironment builds an Environment from "KEY=VALUE" entries, as returned
// by os.Environ. Entries without '=' are ignored; later duplicates win.
func NewEnvironment(entries []string) Environment {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return Environment{vars: vars}
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// With returns a copy of e with key set to value.
func (e Environment) With(key, value string) Environment {
	vars := maps.Clone(e.vars)
	if vars == nil {
		vars = make(map[string]string, 1)
	}
	vars[key] = value
	return Environment{vars: vars}
}

// WithDefault returns a copy of e with key set to value unless key is
// already present, in which case e is returned as is.
func (e Environment) WithDefault(key, value string) Environment {
	if _, ok := e.vars[key]; ok {
		return e
	}
	return e.With(key, value)
}

// Entries returns the variables as sorted "KEY=VALUE" strings.
func (e Environment) Entries() []string {
	keys := slices.Sorted(maps.Keys(e.vars))
	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+e.vars[k])
	}
	return entries
}

// Added returns the sorted "KEY=VALUE" entries of e that are missing from
// base or carry a different value there.
func (e Environment) Added(base Environment) []string {
	var added []string
	for _, k := range slices.Sorted(maps.Keys(e.vars)) {
		if v, ok := base.vars[k]; ok && v == e.vars[k] {
			continue
		}
		added = append(added, k+"="+e.vars[k])
	}
	return added
}

// SPDX-License-Identifier: MPL-2.0

// Package env builds the effective launcher environment by merging the
// inherited process environment with the layered Tekton env files.
package env

import (
	"fmt"
	"strings"
)

type (
	// Entry is a single KEY=VALUE pair in a Map.
	Entry struct {
		Key   string
		Value string
	}

	// Map is an ordered set of environment variables. Keys are unique;
	// setting an existing key replaces its value in place without moving
	// it. Insertion order is preserved so the materialized environment is
	// deterministic.
	Map struct {
		entries []Entry
		index   map[string]int
	}
)

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// FromEnviron creates a Map seeded from "KEY=VALUE" strings, typically
// os.Environ(). Entries without '=' are ignored.
func FromEnviron(environ []string) *Map {
	m := NewMap()
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		m.Set(key, value)
	}
	return m
}

// Set assigns value to key, replacing an existing entry in place.
func (m *Map) Set(key, value string) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (m *Map) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.entries[i].Value, true
}

// GetDefault returns the value for key, or def when absent.
func (m *Map) GetDefault(key, def string) string {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order. The returned slice is a
// copy; mutating it does not affect the Map.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Environ materializes the Map as "KEY=VALUE" strings suitable for the env
// vector of an exec call. This is the only point where the merged
// environment leaves the Map; nothing in the launcher mutates the real
// process environment.
func (m *Map) Environ() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, fmt.Sprintf("%s=%s", e.Key, e.Value))
	}
	return out
}

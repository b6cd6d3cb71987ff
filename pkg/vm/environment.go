package vm

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/agenthands/bscript/pkg/core/value"
)

// maxSuggestDistance bounds how far a typo may be from a bound name before
// Suggest gives up.
const maxSuggestDistance = 2

// Environment holds every binding of a run. There is a single flat scope:
// blocks do not introduce names and redeclaring a name overwrites it.
type Environment struct {
	values map[string]value.Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// Define inserts or overwrites a binding.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up a binding.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Clear drops every binding.
func (e *Environment) Clear() {
	clear(e.values)
}

// Suggest returns the bound name closest to name, for "did you mean" hints.
func (e *Environment) Suggest(name string) (string, bool) {
	best, bestDist := "", -1
	for _, candidate := range e.Names() {
		dist := fuzzy.LevenshteinDistance(name, candidate)
		if dist > maxSuggestDistance && !fuzzy.MatchNormalizedFold(name, candidate) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, bestDist >= 0
}

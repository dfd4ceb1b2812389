// Package memory holds in-process repositories used for local development
// and tests. All state lives in maps guarded by a mutex and is lost on exit.
package memory

import (
	"sort"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// sortedValues returns the map values ordered by less.
func sortedValues[T any](m map[string]*T, clone func(*T) *T, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

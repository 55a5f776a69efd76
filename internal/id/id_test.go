package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUniqueAndSorted(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		u := New()
		assert.Len(t, u, 26)
		assert.False(t, seen[u], "duplicate id %s", u)
		seen[u] = true

		if prev != "" {
			assert.Less(t, prev, u)
		}
		prev = u
	}
}

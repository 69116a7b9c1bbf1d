package generic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(func() []int { return make([]int, 0, 8) })

	s := p.Get()
	require.Empty(t, s)
	require.Equal(t, 8, cap(s))

	s = append(s, 1, 2, 3)
	p.Put(s[:0])

	// A recycled value keeps its backing capacity.
	s2 := p.Get()
	require.Empty(t, s2)
	require.GreaterOrEqual(t, cap(s2), 8)
}

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicesGetIsEmpty(t *testing.T) {
	p := NewSlices[string](4)

	s := p.Get()
	assert.Len(t, s, 0)
	assert.GreaterOrEqual(t, cap(s), 4)

	s = append(s, "a", "b")
	p.Put(s)

	again := p.Get()
	assert.Len(t, again, 0)
	if cap(again) > 0 {
		assert.Equal(t, "", again[:1][0], "returned slices are cleared")
	}
}

func TestSlicesPutNil(t *testing.T) {
	p := NewSlices[int](2)
	p.Put(nil)
	assert.Len(t, p.Get(), 0)
}

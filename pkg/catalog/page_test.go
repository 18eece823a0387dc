package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 12))
	assert.Equal(t, 1, PageCount(1, 12))
	assert.Equal(t, 1, PageCount(12, 12))
	assert.Equal(t, 2, PageCount(13, 12))
	assert.Equal(t, 0, PageCount(5, 0))
}

func TestPaginate_PageLengths(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 25, 36} {
		items := seq(n)
		count := PageCount(n, 12)
		assert.Equal(t, count == 0, n == 0)
		for i := 0; i < count; i++ {
			p := Paginate(items, i, 12)
			assert.Len(t, p.Items, min(12, n-i*12), "n=%d page=%d", n, i)
			assert.Equal(t, i*12, p.Items[0])
		}
		assert.Empty(t, Paginate(items, count, 12).Items)
	}
}

func TestWindow_NavigationStaysInRange(t *testing.T) {
	total := 30 // 3 pages
	w := NewWindow(12)

	w = w.Previous(total)
	assert.Equal(t, 0, w.Index)

	w = w.Next(total).Next(total).Next(total).Next(total)
	assert.Equal(t, 2, w.Index)

	assert.Equal(t, 2, w.GoTo(7, total).Index)
	assert.Equal(t, 2, w.GoTo(-1, total).Index)
	assert.Equal(t, 1, w.GoTo(1, total).Index)

	empty := NewWindow(12)
	assert.Equal(t, 0, empty.Next(0).Index)
}

func TestWindow_Clamp(t *testing.T) {
	w := Window{Index: 4, Size: 10}
	assert.Equal(t, 1, w.Clamp(15).Index)
	assert.Equal(t, 0, w.Clamp(0).Index)
	assert.Equal(t, 4, w.Clamp(100).Index)
}

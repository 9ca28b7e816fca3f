package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Clamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totalItems int64
		size       int
		requested  string
		wantNumber int
		wantPages  int
	}{
		{name: "first page by default", totalItems: 25, size: 10, requested: "", wantNumber: 1, wantPages: 3},
		{name: "explicit page", totalItems: 25, size: 10, requested: "2", wantNumber: 2, wantPages: 3},
		{name: "non-integer falls back to first", totalItems: 25, size: 10, requested: "abc", wantNumber: 1, wantPages: 3},
		{name: "zero falls back to first", totalItems: 25, size: 10, requested: "0", wantNumber: 1, wantPages: 3},
		{name: "negative falls back to first", totalItems: 25, size: 10, requested: "-4", wantNumber: 1, wantPages: 3},
		{name: "overflow clamps to last", totalItems: 25, size: 10, requested: "999", wantNumber: 3, wantPages: 3},
		{name: "exact boundary", totalItems: 30, size: 10, requested: "3", wantNumber: 3, wantPages: 3},
		{name: "empty set keeps one page", totalItems: 0, size: 10, requested: "5", wantNumber: 1, wantPages: 1},
		{name: "whitespace tolerated", totalItems: 25, size: 10, requested: " 2 ", wantNumber: 2, wantPages: 3},
		{name: "invalid size uses default", totalItems: 25, size: 0, requested: "1", wantNumber: 1, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := New(tt.totalItems, tt.size, tt.requested)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.totalItems, page.TotalItems)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, New(25, 10, "1").Offset())
	assert.Equal(t, 10, New(25, 10, "2").Offset())
	assert.Equal(t, 20, New(25, 10, "999").Offset())
}

func TestPage_HasNextPrev(t *testing.T) {
	t.Parallel()

	first := New(25, 10, "1")
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrev())

	last := New(25, 10, "3")
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrev())

	only := New(5, 10, "1")
	assert.False(t, only.HasNext())
	assert.False(t, only.HasPrev())
}

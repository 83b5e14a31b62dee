package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsWindow(t *testing.T) {
	p := New(0, -5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = New(3, 20)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 20, New(3, 10).Offset())
}

func TestSetTotal(t *testing.T) {
	p := New(1, 10)

	p.SetTotal(25)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, int64(3), p.TotalPages)

	p.SetTotal(30)
	assert.Equal(t, int64(3), p.TotalPages)

	p.SetTotal(0)
	assert.Equal(t, int64(0), p.TotalPages)
}

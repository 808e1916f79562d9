package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The listing endpoints share one flat envelope: data at the top level
// next to totalPages/currentPage and a per-endpoint total key.
func TestListEnvelopeShape(t *testing.T) {
	env := listEnvelope([]string{"a", "b"}, "totalBooks", 25, 2, 10)

	assert.Equal(t, true, env["success"])
	assert.Equal(t, []string{"a", "b"}, env["data"])
	assert.Equal(t, 3, env["totalPages"])
	assert.Equal(t, 2, env["currentPage"])
	assert.Equal(t, 25, env["totalBooks"])

	// Nothing is nested under data and no stray keys leak in.
	assert.Len(t, env, 5)
}

func TestListEnvelopeTotalKeyPerEndpoint(t *testing.T) {
	assert.Contains(t, listEnvelope(nil, "totalBorrows", 0, 1, 10), "totalBorrows")
	assert.Contains(t, listEnvelope(nil, "totalUsers", 0, 1, 10), "totalUsers")
}

func TestListEnvelopeClampsPage(t *testing.T) {
	env := listEnvelope(nil, "totalBooks", 0, -3, 10)
	assert.Equal(t, 1, env["currentPage"])
}

func TestTotalPagesRoundsUp(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
}

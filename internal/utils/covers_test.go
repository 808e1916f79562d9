package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverImageByTitleIsDeterministic(t *testing.T) {
	a := CoverImageByTitle("The Pragmatic Programmer")
	b := CoverImageByTitle("The Pragmatic Programmer")

	assert.Equal(t, a, b)
	assert.Contains(t, stockCovers, a)
}

func TestCoverImageByTitleEmptyFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultCoverImage, CoverImageByTitle(""))
}

func TestBestCoverImageWithoutISBNUsesTitleFallback(t *testing.T) {
	got := BestCoverImage(context.Background(), "", "Dune")
	assert.Equal(t, CoverImageByTitle("Dune"), got)
}

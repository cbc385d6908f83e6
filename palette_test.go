package foodgrid

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/foodgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestPalette(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stripes.png")
	writePNG(t, file, grid.Size, 0)

	p, err := SuggestPalette(file, grid.MedianCut)
	require.NoError(t, err)
	assert.NotEmpty(t, p)
	assert.LessOrEqual(t, len(p), grid.PaletteSize)

	_, err = SuggestPalette(filepath.Join(t.TempDir(), "missing.png"), grid.MedianCut)
	assert.Error(t, err)
}

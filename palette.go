package foodgrid

import (
	"fmt"
	"image"
	"os"

	"github.com/bodgit/foodgrid/grid"
)

// SuggestPalette reads the image in file and extracts a palette of up to
// grid.PaletteSize colors from it using method
func SuggestPalette(file string, method grid.Method) (grid.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return grid.Extract(m, grid.PaletteSize, method)
}

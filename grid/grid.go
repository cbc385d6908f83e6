/*
Package grid implements a grid decoder and encoder.

A grid is a small image stored as a JSON array of strings, one string per row
of pixels. Each character of a row is a single digit naming a palette entry,
counting from 1, so a four color palette uses the digits 1 to 4. Rows are
written top to bottom and characters left to right.

The encoder expects an image of exactly 40 by 40 pixels and maps every pixel
to the nearest palette color. The decoder accepts a grid of any size as long
as every row has the same length.
*/
package grid

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// Size is the width and height in pixels of an image accepted by the
	// encoder
	Size = 40

	// Ext is the file extension used for grid files
	Ext = ".json"

	firstLabel = '1'
)

// ErrMalformed is returned when grid data is not a non-empty JSON array of
// equal length strings.
var ErrMalformed = errors.New("grid: malformed grid")

// DimensionError is returned when an image to be encoded is not the required
// size.
type DimensionError struct {
	Width, Height         int
	WantWidth, WantHeight int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("grid: image must be %dx%d pixels, got %dx%d", e.WantWidth, e.WantHeight, e.Width, e.Height)
}

// LabelError is returned when a grid contains a character that doesn't name
// a palette entry.
type LabelError struct {
	Row, Col int
	Label    rune
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("grid: invalid label %q at row %d, column %d", e.Label, e.Row, e.Col)
}

// Grid is an image encoded as rows of palette labels
type Grid []string

// Width returns the number of characters in the first row
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return utf8.RuneCountInString(g[0])
}

// Height returns the number of rows
func (g Grid) Height() int {
	return len(g)
}

// Validate checks every row is the same length and every character names
// one of n palette entries.
func (g Grid) Validate(n int) error {
	if len(g) == 0 {
		return fmt.Errorf("%w: no rows", ErrMalformed)
	}
	w := g.Width()
	for y, row := range g {
		if rw := utf8.RuneCountInString(row); rw != w {
			return fmt.Errorf("%w: row %d has length %d, expected %d", ErrMalformed, y, rw, w)
		}
		x := 0
		for _, r := range row {
			if i := int(r) - firstLabel; i < 0 || i >= n {
				return &LabelError{Row: y, Col: x, Label: r}
			}
			x++
		}
	}
	return nil
}

// EdgeLabel returns the most frequent label found along the border of the
// grid. Ties resolve to the lowest label. It returns 0 for an empty grid.
func (g Grid) EdgeLabel() byte {
	h, w := g.Height(), g.Width()
	if h == 0 || w == 0 {
		return 0
	}

	var counts [256]int
	for x := 0; x < w; x++ {
		counts[g[0][x]]++
		counts[g[h-1][x]]++
	}
	for y := 0; y < h; y++ {
		counts[g[y][0]]++
		counts[g[y][w-1]]++
	}

	var best byte
	for i := range counts {
		if counts[i] > counts[best] {
			best = byte(i)
		}
	}
	return best
}

package grid

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of colors in a palette
const PaletteSize = 4

var defaultHex = [PaletteSize]string{
	"#D4C454", // 1 wall yellow
	"#447604", // 2 avocado green
	"#208AAE", // 3 blue
	"#F28482", // 4 coral
}

// Palette is an ordered list of reference colors. The color at index i is
// written as the label '1'+i.
type Palette []color.RGBA

// DefaultPalette returns the standard four color palette
func DefaultPalette() Palette {
	p, err := ParsePalette(defaultHex[:]...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette builds a palette from hex color strings such as "#D4C454".
// Exactly PaletteSize colors are required.
func ParsePalette(hex ...string) (Palette, error) {
	if len(hex) != PaletteSize {
		return nil, fmt.Errorf("grid: palette needs %d colors, got %d", PaletteSize, len(hex))
	}
	p := make(Palette, 0, len(hex))
	for _, h := range hex {
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("grid: bad palette color %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{r, g, b, 0xff})
	}
	return p, nil
}

// Hex returns the palette as hex color strings
func (p Palette) Hex() []string {
	s := make([]string, 0, len(p))
	for _, c := range p {
		cf, _ := colorful.MakeColor(c)
		s = append(s, cf.Hex())
	}
	return s
}

// Convert an arbitrary color to 8-bit RGB, ignoring any alpha
func rgb(c color.Color) (int, int, int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}

// Index returns the index of the palette color nearest to c by squared
// Euclidean distance over R, G and B. The first of any equally near colors
// wins.
func (p Palette) Index(c color.Color) int {
	r, g, b := rgb(c)
	best, bestSum := 0, -1
	for i, pc := range p {
		dr, dg, db := r-int(pc.R), g-int(pc.G), b-int(pc.B)
		if sum := dr*dr + dg*dg + db*db; bestSum < 0 || sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// Label returns the grid label of the palette color nearest to c
func (p Palette) Label(c color.Color) byte {
	return byte(firstLabel + p.Index(c))
}

// Color returns the palette color named by label
func (p Palette) Color(label byte) (color.RGBA, bool) {
	i := int(label) - firstLabel
	if i < 0 || i >= len(p) {
		return color.RGBA{}, false
	}
	return p[i], true
}

func (p Palette) colorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

var errEmptyPalette = errors.New("grid: empty palette")

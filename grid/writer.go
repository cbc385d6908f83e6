package grid

import (
	"encoding/json"
	"image"
	"io"
)

// Codec converts between images and grids using a fixed palette
type Codec struct {
	Palette Palette

	// Width and Height are the exact dimensions required when encoding
	Width, Height int
}

// NewCodec returns a Codec for p that encodes Size by Size images
func NewCodec(p Palette) *Codec {
	return &Codec{
		Palette: p,
		Width:   Size,
		Height:  Size,
	}
}

// FromImage quantizes every pixel of m to its nearest palette label.
func (c *Codec) FromImage(m image.Image) (Grid, error) {
	b := m.Bounds()
	if b.Dx() != c.Width || b.Dy() != c.Height {
		return nil, &DimensionError{
			Width:      b.Dx(),
			Height:     b.Dy(),
			WantWidth:  c.Width,
			WantHeight: c.Height,
		}
	}
	if len(c.Palette) == 0 {
		return nil, errEmptyPalette
	}

	g := make(Grid, 0, b.Dy())
	row := make([]byte, b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = c.Palette.Label(m.At(x, y))
		}
		g = append(g, string(row))
	}
	return g, nil
}

// Marshal returns the JSON form of g, one row per line
func Marshal(g Grid) ([]byte, error) {
	if g == nil {
		g = Grid{}
	}
	return json.MarshalIndent(g, "", "  ")
}

// Encode writes the Image m to w in grid format.
func (c *Codec) Encode(w io.Writer, m image.Image) error {
	g, err := c.FromImage(m)
	if err != nil {
		return err
	}

	b, err := Marshal(g)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}

package grid

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
)

// Decode reads grid data from r. The data must be a JSON array of strings.
func Decode(r io.Reader) (Grid, error) {
	var g Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}
	return g, nil
}

// ToImage renders g as a paletted image the same size as the grid. Each
// pixel is set to the exact palette color named by its label.
func (c *Codec) ToImage(g Grid) (*image.Paletted, error) {
	if len(c.Palette) == 0 {
		return nil, errEmptyPalette
	}
	if err := g.Validate(len(c.Palette)); err != nil {
		return nil, err
	}

	m := image.NewPaletted(image.Rect(0, 0, g.Width(), g.Height()), c.Palette.colorPalette())
	for y, row := range g {
		for x := 0; x < len(row); x++ {
			m.SetColorIndex(x, y, row[x]-firstLabel)
		}
	}
	return m, nil
}

// Decode reads grid data from r and returns it as an image.Image.
func (c *Codec) Decode(r io.Reader) (image.Image, error) {
	g, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return c.ToImage(g)
}

// DecodeConfig returns the color model and dimensions of grid data without
// rendering the image.
func (c *Codec) DecodeConfig(r io.Reader) (image.Config, error) {
	g, err := Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	if err := g.Validate(len(c.Palette)); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: c.Palette.colorPalette(),
		Width:      g.Width(),
		Height:     g.Height(),
	}, nil
}

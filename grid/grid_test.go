package grid

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(r *rand.Rand, w, h int) Grid {
	g := make(Grid, h)
	for y := range g {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			sb.WriteByte(byte('1' + r.Intn(PaletteSize)))
		}
		g[y] = sb.String()
	}
	return g
}

func TestPaletteIndexExact(t *testing.T) {
	p := DefaultPalette()
	for i, c := range p {
		assert.Equal(t, i, p.Index(c))
		assert.Equal(t, byte('1'+i), p.Label(c))
	}
}

func TestPaletteIndexNearest(t *testing.T) {
	p := DefaultPalette()

	tables := []struct {
		name string
		c    color.Color
		want byte
	}{
		{"near yellow", color.RGBA{200, 190, 90, 0xff}, '1'},
		{"near green", color.RGBA{70, 110, 10, 0xff}, '2'},
		{"near blue", color.RGBA{40, 140, 170, 0xff}, '3'},
		{"near coral", color.RGBA{250, 130, 130, 0xff}, '4'},
		{"alpha ignored", color.NRGBA{0x20, 0x8a, 0xae, 0x10}, '3'},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, p.Label(table.c))
		})
	}
}

func TestPaletteIndexTie(t *testing.T) {
	p := Palette{
		{0, 0, 0, 0xff},
		{20, 0, 0, 0xff},
		{20, 0, 0, 0xff},
	}
	// Equidistant from the first two entries
	assert.Equal(t, 0, p.Index(color.RGBA{10, 0, 0, 0xff}))
	// Identical entries resolve to the first
	assert.Equal(t, 1, p.Index(color.RGBA{20, 0, 0, 0xff}))
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("#D4C454", "447604", "#208aae", "#F28482")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), p)
	assert.Equal(t, []string{"#d4c454", "#447604", "#208aae", "#f28482"}, p.Hex())

	_, err = ParsePalette("#D4C454", "#447604", "#208AAE")
	assert.Error(t, err)

	_, err = ParsePalette("#D4C454", "#447604", "#208AAE", "#zzzzzz")
	assert.Error(t, err)
}

func TestPaletteColor(t *testing.T) {
	p := DefaultPalette()

	c, ok := p.Color('2')
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0x44, 0x76, 0x04, 0xff}, c)

	_, ok = p.Color('0')
	assert.False(t, ok)
	_, ok = p.Color('5')
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	c := NewCodec(DefaultPalette())
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		g := randomGrid(r, Size, Size)

		m, err := c.ToImage(g)
		require.NoError(t, err)

		got, err := c.FromImage(m)
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	p := DefaultPalette()
	c := NewCodec(p)

	m := image.NewRGBA(image.Rect(10, 10, 10+Size, 10+Size))
	for y := 10; y < 10+Size; y++ {
		for x := 10; x < 10+Size; x++ {
			m.Set(x, y, p[3])
		}
	}
	m.Set(10, 10, p[0])

	g, err := c.FromImage(m)
	require.NoError(t, err)
	require.Len(t, g, Size)
	assert.Equal(t, "1"+strings.Repeat("4", Size-1), g[0])
	assert.Equal(t, strings.Repeat("4", Size), g[Size-1])
}

func TestEncodeWrongSize(t *testing.T) {
	c := NewCodec(DefaultPalette())

	w := new(bytes.Buffer)
	err := c.Encode(w, image.NewRGBA(image.Rect(0, 0, 10, 10)))

	var de *DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, DimensionError{10, 10, Size, Size}, *de)
	assert.Zero(t, w.Len())
}

func TestEncodeFormat(t *testing.T) {
	p := DefaultPalette()
	c := &Codec{Palette: p, Width: 2, Height: 2}

	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.Set(0, 0, p[0])
	m.Set(1, 0, p[1])
	m.Set(0, 1, p[2])
	m.Set(1, 1, p[3])

	w := new(bytes.Buffer)
	require.NoError(t, c.Encode(w, m))
	assert.Equal(t, "[\n  \"12\",\n  \"34\"\n]", w.String())
}

func TestToImageRows(t *testing.T) {
	p := DefaultPalette()
	c := NewCodec(p)

	m, err := c.ToImage(Grid{"1111", "2222", "3333", "4444"})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), m.Bounds())

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, p[y], m.At(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestToImageErrors(t *testing.T) {
	c := NewCodec(DefaultPalette())

	t.Run("empty", func(t *testing.T) {
		_, err := c.ToImage(Grid{})
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := c.ToImage(Grid{"1111", "222", "3333"})
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("ragged characters", func(t *testing.T) {
		_, err := c.ToImage(Grid{"1é", "111"})
		require.True(t, errors.Is(err, ErrMalformed))
		assert.Contains(t, err.Error(), "row 1 has length 3, expected 2")
	})

	tables := []struct {
		name string
		g    Grid
		want LabelError
	}{
		{"zero", Grid{"1110", "2222"}, LabelError{0, 3, '0'}},
		{"five", Grid{"1111", "2252"}, LabelError{1, 2, '5'}},
		{"letter", Grid{"a111"}, LabelError{0, 0, 'a'}},
		{"accent", Grid{"1é", "11"}, LabelError{0, 1, 'é'}},
		{"after accent", Grid{"11", "é5"}, LabelError{1, 0, 'é'}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := c.ToImage(table.g)
			var le *LabelError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, table.want, *le)
		})
	}
}

func TestDecode(t *testing.T) {
	c := NewCodec(DefaultPalette())

	m, err := c.Decode(strings.NewReader(`["12", "34"]`))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())

	cfg, err := c.DecodeConfig(strings.NewReader(`["123", "341"]`))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)

	for _, s := range []string{`"not an array"`, `null`, `[1, 2]`, `{`} {
		_, err := Decode(strings.NewReader(s))
		assert.True(t, errors.Is(err, ErrMalformed), s)
	}
}

func TestEdgeLabel(t *testing.T) {
	assert.Equal(t, byte('2'), Grid{
		"2222",
		"2113",
		"2443",
		"3333",
	}.EdgeLabel())
	assert.Equal(t, byte('1'), Grid{"12", "21"}.EdgeLabel())
	assert.Equal(t, byte(0), Grid{}.EdgeLabel())
}

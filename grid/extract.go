package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how Extract chooses palette colors
type Method int

const (
	// MedianCut splits the color space into boxes of similar population
	MedianCut Method = iota
	// Dominant picks the most visually dominant colors
	Dominant
	// KMeans clusters the pixel colors
	KMeans
)

var methodNames = map[Method]string{
	MedianCut: "mediancut",
	Dominant:  "dominant",
	KMeans:    "kmeans",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method with the given name
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("grid: unknown palette method %q", s)
}

var errNoColors = errors.New("grid: no colors found")

// Extract suggests a palette of at most n colors for m. The colors are
// ordered with the most common first.
func Extract(m image.Image, n int, method Method) (Palette, error) {
	if n <= 0 {
		return nil, fmt.Errorf("grid: invalid palette size %d", n)
	}

	var p Palette
	switch method {
	case MedianCut:
		p = medianCut(m, n)
	case Dominant:
		p = dominant(m, n)
	case KMeans:
		var err error
		if p, err = kMeans(m, n); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("grid: unknown palette method %v", method)
	}

	if len(p) == 0 {
		return nil, errNoColors
	}
	return p, nil
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b := rgb(c)
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
}

func medianCut(m image.Image, n int) Palette {
	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), m)
	if len(cp) == 0 {
		return nil
	}

	// Rank the quantized colors by how many pixels map to each
	counts := make([]int, len(cp))
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[cp.Index(m.At(x, y))]++
		}
	}

	idx := make([]int, len(cp))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return counts[idx[i]] > counts[idx[j]] })

	p := make(Palette, 0, len(cp))
	for _, i := range idx {
		p = append(p, toRGBA(cp[i]))
	}
	return p
}

func dominant(m image.Image, n int) Palette {
	colors := dominantcolor.FindWeight(m, n)
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].Weight > colors[j].Weight })

	p := make(Palette, 0, len(colors))
	for _, c := range colors {
		p = append(p, toRGBA(c.RGBA))
	}
	return p
}

func kMeans(m image.Image, n int) (Palette, error) {
	var dataset clusters.Observations
	bounds := m.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgb(m.At(x, y))
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 0xff,
				float64(g) / 0xff,
				float64(b) / 0xff,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, errNoColors
	}
	if n > len(dataset) {
		n = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, n)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cc, func(i, j int) bool { return len(cc[i].Observations) > len(cc[j].Observations) })

	p := make(Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		p = append(p, color.RGBA{
			uint8(c.Center[0]*0xff + 0.5),
			uint8(c.Center[1]*0xff + 0.5),
			uint8(c.Center[2]*0xff + 0.5),
			0xff,
		})
	}
	return p, nil
}

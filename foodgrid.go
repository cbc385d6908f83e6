/*
Package foodgrid is a library for converting small four color images into
grids of palette labels, keeping the manifest of converted grids up to date,
and turning grids back into images.
*/
package foodgrid

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/bodgit/foodgrid/grid"
	"github.com/bodgit/foodgrid/manifest"
)

// ErrMissingInput is returned when a file to be converted doesn't exist
var ErrMissingInput = errors.New("foodgrid: file not found")

// DefaultFoods lists the grids converted back to images when no names are
// given to DecodeAll
var DefaultFoods = []string{
	"strawberry", "carrot", "mushroom", "orange", "tomato",
	"corn", "grape", "avocado", "cherry", "lemon",
	"pepper", "cookie", "pretzel", "taco", "hamburger", "cake",
}

// Config holds the directories and palette used by a Converter
type Config struct {
	// InputDir is searched for images by Batch
	InputDir string

	// GridDir receives grid files
	GridDir string

	// ImageDir receives images rendered by DecodeAll
	ImageDir string

	// Manifest is the path of the manifest file
	Manifest string

	Palette grid.Palette

	// Size is the width and height required of images being encoded
	Size int
}

// DefaultConfig returns the configuration used by the command line tool
// when no flags are given
func DefaultConfig() Config {
	return Config{
		InputDir: "images",
		GridDir:  "foods",
		ImageDir: "food_png",
		Manifest: filepath.Join("foods", manifest.Filename),
		Palette:  grid.DefaultPalette(),
		Size:     grid.Size,
	}
}

// Converter runs conversions using a fixed configuration
type Converter struct {
	cfg    Config
	codec  *grid.Codec
	ledger *Ledger
	logger *log.Logger
}

// New returns a Converter for cfg. The ledger is optional; when it is nil no
// history of conversions is kept.
func New(cfg Config, ledger *Ledger, logger *log.Logger) *Converter {
	if cfg.Size == 0 {
		cfg.Size = grid.Size
	}
	return &Converter{
		cfg: cfg,
		codec: &grid.Codec{
			Palette: cfg.Palette,
			Width:   cfg.Size,
			Height:  cfg.Size,
		},
		ledger: ledger,
		logger: logger,
	}
}

package foodgrid

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/foodgrid/grid"
	"github.com/bodgit/foodgrid/manifest"
)

func stem(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func gridName(file string) string {
	return stem(file) + grid.Ext
}

func isFile(file string) bool {
	info, err := os.Stat(file)
	return err == nil && info.Mode().IsRegular()
}

func writeFile(file string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return err
	}

	return f.Close()
}

// encodeFile converts the image src into the grid file named name in the
// grid directory
func (c *Converter) encodeFile(src, name string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	r := io.TeeReader(f, h)
	m, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}

	g, err := c.codec.FromImage(m)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}

	b, err := grid.Marshal(g)
	if err != nil {
		return "", err
	}

	// The ledger is updated first so a failure leaves no grid behind
	if c.ledger != nil {
		sha := fmt.Sprintf("%X", h.Sum(nil))
		prev, err := c.ledger.FindGrid(sha)
		if err != nil {
			return "", err
		}
		if prev != nil && !bytes.Equal(prev, b) {
			c.logger.Printf("Grid for %s differs from its previous conversion\n", src)
		}
		if err := c.ledger.Record(name, sha, b); err != nil {
			return "", err
		}
	}

	dst := filepath.Join(c.cfg.GridDir, name)
	if err := writeFile(dst, b); err != nil {
		return "", err
	}
	c.logger.Printf("Saved grid %s -> %s\n", src, dst)

	return dst, nil
}

// Convert converts a single image into a grid file and adds it to the
// manifest. The manifest is only rewritten if the grid wasn't already listed.
// It returns the path of the grid file written.
func (c *Converter) Convert(file string) (string, error) {
	if !isFile(file) {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, file)
	}

	name := gridName(file)
	dst, err := c.encodeFile(file, name)
	if err != nil {
		return "", err
	}

	m, err := c.loadManifest()
	if err != nil {
		return "", err
	}

	if m.Add(name) {
		if err := m.Save(c.cfg.Manifest); err != nil {
			return "", err
		}
		c.logger.Printf("Added \"%s\" to %s\n", name, c.cfg.Manifest)
	} else {
		c.logger.Printf("\"%s\" already in %s\n", name, c.cfg.Manifest)
	}

	return dst, nil
}

func (c *Converter) loadManifest() (*manifest.Manifest, error) {
	m, recovered, err := manifest.Load(c.cfg.Manifest)
	if err != nil {
		return nil, err
	}
	if recovered {
		c.logger.Printf("No usable manifest at %s, starting empty\n", c.cfg.Manifest)
	}
	return m, nil
}

// decodeFile renders the grid file src as a PNG image at dst
func (c *Converter) decodeFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, src)
		}
		return err
	}
	defer f.Close()

	g, err := grid.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	m, err := c.codec.ToImage(g)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	c.logger.Printf("%s is %dx%d, edge label %c\n", src, g.Width(), g.Height(), g.EdgeLabel())

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := png.Encode(w, m); err != nil {
		return err
	}

	return w.Close()
}

package foodgrid

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/bodgit/foodgrid/grid"
)

const imageExt = ".png"

// findImages returns the PNG files directly inside dir sorted by name
func findImages(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, errors.New("foodgrid: not a directory")
	}

	names, err := d.Readdirnames(0)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range names {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if name[0] == '.' || filepath.Ext(name) != imageExt {
			continue
		}
		file := filepath.Join(dir, name)
		if !isFile(file) {
			continue
		}
		files = append(files, file)
	}
	sort.Strings(files)

	return files, nil
}

// Batch converts every PNG image in the input directory that isn't already
// listed in the manifest. A file that fails to convert is recorded in the
// summary and the run carries on with the next file. Newly converted grids
// are appended to the manifest, which is saved once at the end and only if
// something was added.
func (c *Converter) Batch() (*Summary, error) {
	m, err := c.loadManifest()
	if err != nil {
		return nil, err
	}

	files, err := findImages(c.cfg.InputDir)
	if err != nil {
		return nil, err
	}

	s := new(Summary)
	var pending []string
	for _, file := range files {
		name := gridName(file)
		r := Result{
			Source: file,
			Output: filepath.Join(c.cfg.GridDir, name),
		}

		if m.Contains(name) {
			c.logger.Printf("Skipping %s, \"%s\" already in manifest\n", file, name)
			r.Outcome = Skipped
			s.add(r)
			continue
		}

		if _, err := c.encodeFile(file, name); err != nil {
			c.logger.Printf("Failed to convert %s: %v\n", file, err)
			r.Outcome, r.Err = Failed, err
			s.add(r)
			continue
		}

		pending = append(pending, name)
		r.Outcome = Converted
		s.add(r)
	}

	var added int
	for _, name := range pending {
		if m.Add(name) {
			added++
		}
	}

	if added > 0 {
		if err := m.Save(c.cfg.Manifest); err != nil {
			return s, err
		}
		c.logger.Printf("Added %d grid(s) to %s\n", added, c.cfg.Manifest)
	}

	return s, nil
}

// DecodeAll renders the grid file for each name as a PNG image. A missing
// or invalid grid is recorded in the summary and the run carries on with the
// next name.
func (c *Converter) DecodeAll(names []string) *Summary {
	s := new(Summary)
	for _, name := range names {
		r := Result{
			Source: filepath.Join(c.cfg.GridDir, name+grid.Ext),
			Output: filepath.Join(c.cfg.ImageDir, name+imageExt),
		}

		if err := c.decodeFile(r.Source, r.Output); err != nil {
			c.logger.Printf("Failed to decode %s: %v\n", r.Source, err)
			r.Outcome, r.Err = Failed, err
		} else {
			c.logger.Printf("Converted %s -> %s\n", r.Source, r.Output)
			r.Outcome = Converted
		}
		s.add(r)
	}
	return s
}

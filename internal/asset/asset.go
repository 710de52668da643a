// Package asset loads the sprite sheets described by a YAML manifest.
//
// Loading is best effort: Load always returns a usable Catalog holding every
// sheet that decoded cleanly, together with an error describing the ones that
// did not. Entities whose sheet is missing are drawn as primitive shapes.
package asset

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/object"
)

// Sentinel errors reported (wrapped) by Load.
var (
	ErrSheetNotFound = errors.New("sprite sheet not found")
	ErrBadSheet      = errors.New("bad sprite sheet")
)

// DefaultManifest is the manifest name inside the embedded sprite set.
const DefaultManifest = "sprites/manifest.yaml"

//go:embed sprites
var builtin embed.FS

// alphaThreshold is the minimum 16-bit alpha for a pixel to count as opaque.
const alphaThreshold = 0x8000

// SheetSpec is one manifest entry.
type SheetSpec struct {
	Name        string `yaml:"name"`
	Image       string `yaml:"image"` // Relative to the manifest
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Frames      int    `yaml:"frames"`
}

// Manifest lists the sprite sheets of a sprite set.
type Manifest struct {
	Sheets []SheetSpec `yaml:"sheets"`
}

// Sheet is a decoded sprite sheet.
type Sheet struct {
	Name        string
	FrameWidth  int
	FrameHeight int
	Frames      []*draw.Mask
}

// Frame returns frame i, wrapping out-of-range indices.
func (s *Sheet) Frame(i int) *draw.Mask {
	if len(s.Frames) == 0 {
		return nil
	}
	i %= len(s.Frames)
	if i < 0 {
		i += len(s.Frames)
	}
	return s.Frames[i]
}

// Catalog maps sheet identities to decoded sheets.
type Catalog struct {
	sheets map[object.Sheet]*Sheet
}

// NewCatalog returns an empty catalog. Every lookup in it misses.
func NewCatalog() *Catalog {
	return &Catalog{sheets: make(map[object.Sheet]*Sheet)}
}

// Add registers s under id, replacing any previous sheet.
func (c *Catalog) Add(id object.Sheet, s *Sheet) {
	c.sheets[id] = s
}

// Sheet returns the sheet for id. A nil catalog has no sheets.
func (c *Catalog) Sheet(id object.Sheet) (*Sheet, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.sheets[id]
	return s, ok
}

// Len returns the number of loaded sheets.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sheets)
}

// Missing lists the known sheets that are not in the catalog.
func (c *Catalog) Missing() []object.Sheet {
	var missing []object.Sheet
	for _, id := range object.Sheets() {
		if _, ok := c.Sheet(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Load reads a manifest from the filesystem. An empty path selects the
// embedded sprite set.
func Load(manifestPath string) (*Catalog, error) {
	if manifestPath == "" {
		return LoadFS(builtin, DefaultManifest)
	}
	dir, name := filepath.Split(manifestPath)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir), name)
}

// LoadFS reads the manifest called name from fsys and decodes every sheet it
// lists. The returned catalog is never nil.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	catalog := NewCatalog()

	m, err := loadManifest(fsys, name)
	if err != nil {
		return catalog, err
	}

	byName := make(map[string]object.Sheet, len(object.Sheets()))
	for _, id := range object.Sheets() {
		byName[id.String()] = id
	}

	var errs []error
	base := path.Dir(name)
	for _, spec := range m.Sheets {
		id, ok := byName[spec.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("sheet %q: unknown name: %w", spec.Name, ErrBadSheet))
			continue
		}
		sheet, err := openSheet(fsys, path.Join(base, spec.Image), spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", spec.Name, err))
			continue
		}
		catalog.Add(id, sheet)
	}

	for _, id := range catalog.Missing() {
		errs = append(errs, fmt.Errorf("sheet %q: %w", id, ErrSheetNotFound))
	}
	return catalog, errors.Join(errs...)
}

func loadManifest(fsys fs.FS, name string) (*Manifest, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func openSheet(fsys fs.FS, name string, spec SheetSpec) (*Sheet, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSheetNotFound, err)
	}
	defer f.Close()
	return DecodeSheet(f, spec)
}

// DecodeSheet slices an image into spec.Frames frames of
// spec.FrameWidth×spec.FrameHeight, read left to right then top to bottom.
func DecodeSheet(r io.Reader, spec SheetSpec) (*Sheet, error) {
	if spec.FrameWidth <= 0 || spec.FrameHeight <= 0 || spec.Frames <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d, %d frames",
			ErrBadSheet, spec.FrameWidth, spec.FrameHeight, spec.Frames)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrBadSheet, err)
	}

	bounds := img.Bounds()
	cols := bounds.Dx() / spec.FrameWidth
	rows := bounds.Dy() / spec.FrameHeight
	if cols*rows < spec.Frames {
		return nil, fmt.Errorf("%w: %dx%d image holds %d frames, manifest wants %d",
			ErrBadSheet, bounds.Dx(), bounds.Dy(), cols*rows, spec.Frames)
	}

	sheet := &Sheet{
		Name:        spec.Name,
		FrameWidth:  spec.FrameWidth,
		FrameHeight: spec.FrameHeight,
		Frames:      make([]*draw.Mask, spec.Frames),
	}
	for i := range sheet.Frames {
		ox := bounds.Min.X + (i%cols)*spec.FrameWidth
		oy := bounds.Min.Y + (i/cols)*spec.FrameHeight
		mask := draw.NewMask(spec.FrameWidth, spec.FrameHeight)
		for y := 0; y < spec.FrameHeight; y++ {
			for x := 0; x < spec.FrameWidth; x++ {
				if _, _, _, a := img.At(ox+x, oy+y).RGBA(); a >= alphaThreshold {
					mask.SetBit(x, y)
				}
			}
		}
		sheet.Frames[i] = mask
	}
	return sheet, nil
}

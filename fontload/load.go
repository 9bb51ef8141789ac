package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/glyphatlas"
)

// ErrNoFont is returned when no usable font is found.
var ErrNoFont = errors.New("fontload: no suitable font found")

// fallbackFamilies are tried after the configured families.
var fallbackFamilies = []string{
	"MesloLGS NF",
	"Menlo",
	"Monaco",
	"Consolas",
	"DejaVu Sans Mono",
}

// Load scans cfg.Dirs and returns the best matching variants.
func Load(cfg Config) (*glyphatlas.FontVariants, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := Scan(cfg.Dirs...)
	if err != nil {
		return nil, fmt.Errorf("fontload: scan: %w", err)
	}
	return db.Load(cfg.Families)
}

// Load picks a regular face from families, then the fallback families,
// then any monospace face, then any face. Other styles come from the same
// family as the regular face.
func (db *Database) Load(families []string) (*glyphatlas.FontVariants, error) {
	regular, ok := db.findRegular(families)
	if !ok {
		return nil, ErrNoFont
	}
	regularData, err := readFace(regular)
	if err != nil {
		return nil, err
	}
	v := glyphatlas.NewFontVariants(regularData)
	glyphatlas.Logger().Info("fontload: loaded font", "family", regular.Family, "style", regular.Subfamily, "path", regular.Path)

	for _, s := range []struct {
		style glyphatlas.GlyphStyle
		set   func([]byte) *glyphatlas.FontVariants
	}{
		{glyphatlas.StyleBold, v.WithBold},
		{glyphatlas.StyleItalic, v.WithItalic},
		{glyphatlas.StyleBoldItalic, v.WithBoldItalic},
	} {
		face, ok := db.Find(regular.Family, s.style)
		if !ok {
			glyphatlas.Logger().Debug("fontload: style missing, using regular", "family", regular.Family, "style", s.style)
			continue
		}
		data, err := readFace(face)
		if err != nil {
			glyphatlas.Logger().Warn("fontload: skipping variant", "path", face.Path, "err", err)
			continue
		}
		s.set(data)
	}
	return v, nil
}

func (db *Database) findRegular(families []string) (FaceInfo, bool) {
	for _, list := range [][]string{families, fallbackFamilies} {
		for _, family := range list {
			if f, ok := db.Find(family, glyphatlas.StyleRegular); ok {
				return f, true
			}
		}
	}
	if len(families) > 0 {
		glyphatlas.Logger().Warn("fontload: configured fonts not found, using any available font", "families", families)
	}
	for _, f := range db.faces {
		if f.Monospace && f.Style == glyphatlas.StyleRegular {
			return f, true
		}
	}
	for _, f := range db.faces {
		if f.Style == glyphatlas.StyleRegular {
			return f, true
		}
	}
	if len(db.faces) > 0 {
		return db.faces[0], true
	}
	return FaceInfo{}, false
}

func readFace(f FaceInfo) ([]byte, error) {
	// #nosec G304 -- path came from Scan
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("fontload: read %s: %w", f.Path, err)
	}
	return data, nil
}

package fontload

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphatlas"
)

// FaceInfo describes one font file found by Scan.
type FaceInfo struct {
	// Path is the file the face was read from.
	Path string

	// Family is the typographic family name, e.g. "JetBrains Mono".
	Family string

	// Subfamily is the style name, e.g. "Bold Italic".
	Subfamily string

	// Style is derived from Subfamily.
	Style glyphatlas.GlyphStyle

	// Monospace reports whether 'i' and 'M' have the same advance.
	Monospace bool
}

// Database is an index of the fonts found in a set of directories.
type Database struct {
	faces []FaceInfo
}

// Scan walks dirs and indexes every readable .ttf and .otf file.
// Missing directories are skipped. Files that fail to parse are skipped
// and logged at debug level.
func Scan(dirs ...string) (*Database, error) {
	db := &Database{}
	var buf sfnt.Buffer
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				// Unreadable subtrees are not fatal.
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isFontFile(path) {
				return nil
			}
			info, ok := inspect(&buf, path)
			if ok {
				db.faces = append(db.faces, info)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	glyphatlas.Logger().Debug("fontload: scan complete", "dirs", len(dirs), "faces", len(db.faces))
	return db, nil
}

// Len returns the number of indexed faces.
func (db *Database) Len() int {
	return len(db.faces)
}

// Faces returns a copy of the indexed faces in scan order.
func (db *Database) Faces() []FaceInfo {
	return slices.Clone(db.faces)
}

// Find returns the first face of family with exactly the given style.
// Family names compare case-insensitively.
func (db *Database) Find(family string, style glyphatlas.GlyphStyle) (FaceInfo, bool) {
	for _, f := range db.faces {
		if f.Style == style && strings.EqualFold(f.Family, family) {
			return f, true
		}
	}
	return FaceInfo{}, false
}

// MonospaceFamilies returns the sorted, de-duplicated family names of all
// monospace faces.
func (db *Database) MonospaceFamilies() []string {
	var names []string
	for _, f := range db.faces {
		if f.Monospace && !slices.Contains(names, f.Family) {
			names = append(names, f.Family)
		}
	}
	slices.Sort(names)
	return names
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	default:
		return false
	}
}

func inspect(buf *sfnt.Buffer, path string) (FaceInfo, bool) {
	// #nosec G304 -- font directories are provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		glyphatlas.Logger().Debug("fontload: read failed", "path", path, "err", err)
		return FaceInfo{}, false
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		glyphatlas.Logger().Debug("fontload: parse failed", "path", path, "err", err)
		return FaceInfo{}, false
	}

	family := nameOf(f, buf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
	if family == "" {
		return FaceInfo{}, false
	}
	sub := nameOf(f, buf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)

	return FaceInfo{
		Path:      path,
		Family:    family,
		Subfamily: sub,
		Style:     styleOf(sub),
		Monospace: isMonospace(f, buf),
	}, true
}

// nameOf returns the first non-empty name among ids.
func nameOf(f *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		if s, err := f.Name(buf, id); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func styleOf(subfamily string) glyphatlas.GlyphStyle {
	s := strings.ToLower(subfamily)
	return glyphatlas.GlyphStyle{
		Bold:   strings.Contains(s, "bold"),
		Italic: strings.Contains(s, "italic") || strings.Contains(s, "oblique"),
	}
}

func isMonospace(f *sfnt.Font, buf *sfnt.Buffer) bool {
	ppem := fixed.I(int(f.UnitsPerEm()))
	advance := func(r rune) (fixed.Int26_6, bool) {
		gi, err := f.GlyphIndex(buf, r)
		if err != nil || gi == 0 {
			return 0, false
		}
		a, err := f.GlyphAdvance(buf, gi, ppem, font.HintingNone)
		return a, err == nil
	}
	narrow, ok1 := advance('i')
	wide, ok2 := advance('M')
	return ok1 && ok2 && narrow == wide
}

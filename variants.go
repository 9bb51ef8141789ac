package glyphatlas

// FontVariants holds the raw font files a GlyphCache rasterizes from.
//
// Regular is mandatory; bold, italic and bold-italic are optional. Every
// buffer is copied in, so the variants exclusively own their data and the
// caller may reuse its slices.
type FontVariants struct {
	regular    []byte
	bold       []byte
	italic     []byte
	boldItalic []byte
}

// NewFontVariants creates variants with only a regular face.
func NewFontVariants(regular []byte) *FontVariants {
	return &FontVariants{regular: cloneBytes(regular)}
}

// WithBold sets the bold face and returns v for chaining.
func (v *FontVariants) WithBold(data []byte) *FontVariants {
	v.bold = cloneBytes(data)
	return v
}

// WithItalic sets the italic face and returns v for chaining.
func (v *FontVariants) WithItalic(data []byte) *FontVariants {
	v.italic = cloneBytes(data)
	return v
}

// WithBoldItalic sets the bold-italic face and returns v for chaining.
func (v *FontVariants) WithBoldItalic(data []byte) *FontVariants {
	v.boldItalic = cloneBytes(data)
	return v
}

// Regular returns the regular face data.
func (v *FontVariants) Regular() []byte {
	return v.regular
}

// Has reports whether an exact face exists for the style, without fallback.
func (v *FontVariants) Has(style GlyphStyle) bool {
	return len(v.exact(style)) > 0
}

// Resolve returns the font data to rasterize a style from.
//
// Missing variants fall back along a fixed cascade, first match wins:
//
//	bold+italic: bold-italic, bold, italic, regular
//	bold:        bold, regular
//	italic:      italic, regular
//	regular:     regular
//
// The result is never nil for variants built with NewFontVariants and a
// non-empty regular face. A missing variant silently renders as the
// nearest available one.
func (v *FontVariants) Resolve(style GlyphStyle) []byte {
	switch {
	case style.Bold && style.Italic:
		return firstNonEmpty(v.boldItalic, v.bold, v.italic, v.regular)
	case style.Bold:
		return firstNonEmpty(v.bold, v.regular)
	case style.Italic:
		return firstNonEmpty(v.italic, v.regular)
	default:
		return v.regular
	}
}

// exact returns the face stored for style, or nil.
func (v *FontVariants) exact(style GlyphStyle) []byte {
	switch {
	case style.Bold && style.Italic:
		return v.boldItalic
	case style.Bold:
		return v.bold
	case style.Italic:
		return v.italic
	default:
		return v.regular
	}
}

// styles returns the styles that have their own face, regular first.
func (v *FontVariants) styles() []GlyphStyle {
	out := make([]GlyphStyle, 0, 4)
	for _, s := range []GlyphStyle{StyleRegular, StyleBold, StyleItalic, StyleBoldItalic} {
		if v.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(candidates ...[]byte) []byte {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

func cloneBytes(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

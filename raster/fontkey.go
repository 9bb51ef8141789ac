package raster

// fontKey identifies a font buffer by its backing array and length.
// The buffers handed out by glyphatlas.FontVariants are never mutated, so
// identity is enough and hashing the whole file is avoided.
type fontKey struct {
	data *byte
	n    int
}

func keyOf(data []byte) fontKey {
	if len(data) == 0 {
		return fontKey{}
	}
	return fontKey{data: &data[0], n: len(data)}
}

// Cache bounds for parsed fonts and sized faces. Sizes change only on
// zoom, so the face limit is rarely reached.
const (
	maxFonts = 16
	maxFaces = 32
)

package atlas

// glyphPadding is the gap added to each requested dimension.
const glyphPadding = 1

// ShelfPacker implements single-cursor shelf packing over a fixed
// width x height plane.
//
// Unlike a multi-shelf allocator it only tracks the current shelf: once a
// shelf is closed it is never revisited, so the cursor (rowX, rowY) only
// moves forward. This mirrors a bump allocator and keeps Allocate O(1).
//
// ShelfPacker is not safe for concurrent use.
type ShelfPacker struct {
	width  int // Total width of the atlas
	height int // Total height of the atlas

	rowX      int // Next free x on the current shelf
	rowY      int // Top of the current shelf
	rowHeight int // Tallest padded item on the current shelf

	// Tracking for utilization
	allocations int
	usedArea    int
}

// NewShelfPacker creates a packer for the given atlas dimensions.
func NewShelfPacker(width, height int) *ShelfPacker {
	p := &ShelfPacker{
		width:  width,
		height: height,
	}
	p.Reset()
	return p
}

// Allocate finds space for a glyph of the given size.
// Returns the top-left corner and true, or 0, 0, false when the atlas has
// no room left. A failed allocation does not modify the shelf state beyond
// closing the current shelf, so retrying with an equal or larger size keeps
// failing until Reset.
//
// A glyph that cannot fit inside the padded atlas even on an empty shelf
// is rejected without touching the shelf state.
func (p *ShelfPacker) Allocate(glyphWidth, glyphHeight int) (x, y int, ok bool) {
	if glyphWidth+2*glyphPadding > p.width || glyphHeight+2*glyphPadding > p.height {
		return 0, 0, false
	}

	paddedW := glyphWidth + glyphPadding
	paddedH := glyphHeight + glyphPadding

	// Start a new shelf when the glyph overruns the right edge.
	if p.rowX+paddedW > p.width {
		p.rowX = glyphPadding
		p.rowY += p.rowHeight
		p.rowHeight = 0
	}

	if p.rowY+paddedH > p.height {
		return 0, 0, false
	}

	x, y = p.rowX, p.rowY
	p.rowX += paddedW
	p.rowHeight = max(p.rowHeight, paddedH)

	p.allocations++
	p.usedArea += glyphWidth * glyphHeight
	return x, y, true
}

// Reset forgets all allocations and returns the packer to its
// freshly-constructed state.
func (p *ShelfPacker) Reset() {
	p.rowX = glyphPadding
	p.rowY = glyphPadding
	p.rowHeight = 0
	p.allocations = 0
	p.usedArea = 0
}

// Cursor returns the current shelf cursor.
func (p *ShelfPacker) Cursor() (rowX, rowY, rowHeight int) {
	return p.rowX, p.rowY, p.rowHeight
}

// Width returns the atlas width.
func (p *ShelfPacker) Width() int {
	return p.width
}

// Height returns the atlas height.
func (p *ShelfPacker) Height() int {
	return p.height
}

// Allocations returns the number of successful allocations since the last Reset.
func (p *ShelfPacker) Allocations() int {
	return p.allocations
}

// UsedArea returns the unpadded area handed out since the last Reset.
func (p *ShelfPacker) UsedArea() int {
	return p.usedArea
}

// Utilization returns the fraction of atlas area handed out, from 0 to 1.
func (p *ShelfPacker) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}

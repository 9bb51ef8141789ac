// Package atlas provides the rectangle allocator behind the glyph atlas.
//
// ShelfPacker places rectangles left-to-right in horizontal shelves and
// starts a new shelf below the current one when a rectangle does not fit
// horizontally. Space is never reclaimed: the only way to recover area is
// Reset, which forgets every allocation at once.
//
// Every allocation is padded by one pixel on the right and bottom edges and
// the packer starts one pixel in from the atlas origin, so neighbouring
// glyphs never share a texel under bilinear sampling.
package atlas

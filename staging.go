package glyphatlas

// pendingUpload describes a rasterized bitmap waiting in the staging
// buffer for its texture write.
type pendingUpload struct {
	x, y          int
	width, height int
	offset        int // Byte offset into stagingBuffer.data
}

// stagingBuffer batches glyph bitmaps between flushes so that all misses
// of a frame reach the GPU in one pass.
//
// It is append-only until drain, which is the only operation that empties it.
type stagingBuffer struct {
	data    []byte
	pending []pendingUpload
}

// stage appends a tightly packed width x height bitmap destined for (x, y).
func (b *stagingBuffer) stage(x, y, width, height int, bitmap []byte) {
	b.pending = append(b.pending, pendingUpload{
		x:      x,
		y:      y,
		width:  width,
		height: height,
		offset: len(b.data),
	})
	b.data = append(b.data, bitmap[:width*height]...)
}

// drain calls fn for every pending upload in staging order, then empties
// the buffer. Iteration stops at the first error, but the buffer is
// emptied regardless: failed uploads are not retried.
func (b *stagingBuffer) drain(fn func(u pendingUpload, data []byte) error) error {
	defer b.reset()

	for _, u := range b.pending {
		end := u.offset + u.width*u.height
		if err := fn(u, b.data[u.offset:end]); err != nil {
			return err
		}
	}
	return nil
}

// reset empties the buffer, keeping capacity for the next frame.
func (b *stagingBuffer) reset() {
	b.data = b.data[:0]
	b.pending = b.pending[:0]
}

// len returns the number of pending uploads.
func (b *stagingBuffer) len() int {
	return len(b.pending)
}

// size returns the number of staged bytes.
func (b *stagingBuffer) size() int {
	return len(b.data)
}

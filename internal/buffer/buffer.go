package buffer

// Buffer is a giant slice of data you write into it. Serves primarily the purpose of a quasi-arena
// by hosting non-interrelated byte sequences in a single place. Allows writing byte sequences
// streamingly: the current (unfinished) segment accumulates the data until it's finished, after
// which the segment stays intact until the buffer is cleared.
type Buffer struct {
	memory  []byte
	begin   int
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(elements) > b.maxSize-len(b.memory) {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// AppendByte writes a single byte, checking whether it won't exceed the limit.
func (b *Buffer) AppendByte(c byte) (ok bool) {
	if len(b.memory)+1 > b.maxSize {
		return false
	}

	b.memory = append(b.memory, c)
	return true
}

// SegmentLength returns a number of bytes, taken by current segment, calculated as a difference
// between the beginning of the current segment and the current pointer.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Last returns the last byte of the current segment. If the segment is empty, false is
// returned.
func (b *Buffer) Last() (c byte, ok bool) {
	if b.SegmentLength() == 0 {
		return 0, false
	}

	return b.memory[len(b.memory)-1], true
}

// Trunc truncates the last n bytes from the current segment, guarantying that data of previous
// segments stays intact.
func (b *Buffer) Trunc(n int) {
	if seglen := b.SegmentLength(); n > seglen {
		n = seglen
	}

	b.memory = b.memory[:len(b.memory)-n]
}

// Preview returns current segment without moving the head.
func (b *Buffer) Preview() []byte {
	return b.memory[b.begin:]
}

// Finish completes current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:len(b.memory):len(b.memory)]
	b.begin = len(b.memory)

	return segment
}

// Len returns the total number of bytes stored, all the segments included.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}

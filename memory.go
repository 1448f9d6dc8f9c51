package sevm

// Memory is a contiguous, zero-extending, byte-addressable buffer. Reads
// past the end of the backing store return zero bytes rather than
// panicking or erroring; writes grow the store to fit. The word-granular
// high-water mark used by MSIZE is tracked separately, on FrameState, via
// accessMemoryRange — Memory itself only knows its physical length.
type Memory struct {
	store []byte
}

// Resize grows the backing store to at least size bytes, zero-filling the
// new region. It never shrinks.
func (m *Memory) Resize(size uint64) {
	if m.Len() < size {
		m.store = append(m.store, make([]byte, size-m.Len())...)
	}
}

// WriteRange copies size bytes from src (zero-extending reads past the end
// of src) starting at srcOff, into the memory starting at dstOff.
func (m *Memory) WriteRange(src []byte, size, srcOff, dstOff uint64) {
	if size == 0 {
		return
	}
	m.Resize(dstOff + size)
	for i := uint64(0); i < size; i++ {
		srcI := srcOff + i
		if srcI < uint64(len(src)) {
			m.store[dstOff+i] = src[srcI]
		} else {
			m.store[dstOff+i] = 0
		}
	}
}

// WriteByte writes a single byte at offset, growing the store if needed.
func (m *Memory) WriteByte(offset uint64, b byte) {
	m.Resize(offset + 1)
	m.store[offset] = b
}

// WriteWord writes the big-endian 32-byte encoding of val at offset.
func (m *Memory) WriteWord(offset uint64, val *W256) {
	m.Resize(offset + 32)
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// ReadWord reads 32 big-endian bytes at offset, zero-extending past the
// end of the store.
func (m *Memory) ReadWord(offset uint64) *W256 {
	return new(W256).SetBytes(m.Slice(offset, 32))
}

// Slice returns a freshly allocated, zero-extended copy of [offset,
// offset+size). A size of 0 returns nil, matching the EVM convention that
// zero-length memory reads/copies are no-ops.
func (m *Memory) Slice(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset < m.Len() {
		n := copy(out, m.store[offset:])
		_ = n
	}
	return out
}

// Len returns the current physical length of the backing store, in bytes.
func (m *Memory) Len() uint64 {
	return uint64(len(m.store))
}

// Data exposes the backing store. Callers must not retain it across a
// write, which may reallocate.
func (m *Memory) Data() []byte {
	return m.store
}

package sevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReadWriteWord(t *testing.T) {
	var m Memory
	v := W256FromUint64(0x2a)
	m.WriteWord(0, v)
	assert.Equal(t, uint64(0x2a), m.ReadWord(0).Uint64())
	assert.Equal(t, uint64(32), m.Len())
}

func TestMemoryZeroExtendedRead(t *testing.T) {
	var m Memory
	// reading past the end returns zero bytes, not an error
	assert.Equal(t, uint64(0), m.ReadWord(1000).Uint64())
}

func TestMemoryWriteRangeZeroPadsPastSource(t *testing.T) {
	var m Memory
	src := []byte{1, 2, 3}
	m.WriteRange(src, 5, 0, 0)
	got := m.Slice(0, 5)
	assert.Equal(t, []byte{1, 2, 3, 0, 0}, got)
}

func TestMemoryWriteByte(t *testing.T) {
	var m Memory
	m.WriteByte(3, 0xff)
	assert.Equal(t, uint64(4), m.Len())
	assert.Equal(t, []byte{0, 0, 0, 0xff}, m.Slice(0, 4))
}

func TestFrameStateAccessMemoryRange(t *testing.T) {
	var f FrameState
	f.accessMemoryRange(1<<40, 0) // zero length is a no-op even at a huge offset
	assert.Equal(t, uint64(0), f.MemorySize)

	f.accessMemoryRange(0, 1)
	assert.Equal(t, uint64(1), f.MemorySize)

	f.accessMemoryRange(33, 32)
	assert.Equal(t, uint64(3), f.MemorySize) // ceil(65/32) == 3

	f.accessMemoryRange(0, 1) // high-water mark never shrinks
	assert.Equal(t, uint64(3), f.MemorySize)
}

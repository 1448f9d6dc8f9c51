package sevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	var st Stack[W256]
	st.Push(*W256FromUint64(1))
	st.Push(*W256FromUint64(2))
	assert.Equal(t, 2, st.Len())
	top := st.Pop()
	assert.Equal(t, uint64(2), top.Uint64())
	assert.Equal(t, 1, st.Len())
}

func TestStackDupSwap(t *testing.T) {
	var st Stack[W256]
	st.Push(*W256FromUint64(10))
	st.Push(*W256FromUint64(20))
	st.Push(*W256FromUint64(30))

	st.Dup(1) // DUP1: duplicate top
	assert.Equal(t, uint64(30), st.Peek().Uint64())
	assert.Equal(t, 4, st.Len())
	st.Pop()

	st.Swap(2) // SWAP1 == Swap(2): exchange top with 2nd-from-top
	assert.Equal(t, uint64(20), st.Data[2].Uint64())
	assert.Equal(t, uint64(30), st.Data[1].Uint64())
}

func TestStackClone(t *testing.T) {
	var st Stack[W256]
	st.Push(*W256FromUint64(1))
	cp := st.Clone()
	st.Push(*W256FromUint64(2))
	assert.Equal(t, 1, cp.Len())
	assert.Equal(t, 2, st.Len())
}

package sevm

import (
	"testing"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/assert"
)

func TestReadOpPushRoundTrip(t *testing.T) {
	op := readOp(vm.PUSH2, []byte{0x01, 0x02})
	assert.Equal(t, vm.PUSH2, op.Code)
	assert.Equal(t, uint64(0x0102), op.Push.Uint64())
}

func TestReadOpNonPush(t *testing.T) {
	op := readOp(vm.ADD, nil)
	assert.Nil(t, op.Push)
	assert.Equal(t, vm.ADD, op.Code)
}

func TestMkCodeOpsConcatenatesBackToOriginal(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 0x05, byte(vm.PUSH1), 0x03, byte(vm.ADD), byte(vm.STOP)}
	ops := mkCodeOps(code)
	assert.Len(t, ops, 4)
	assert.Equal(t, uint64(5), ops[0].Push.Uint64())
	assert.Equal(t, uint64(3), ops[1].Push.Uint64())
	assert.Equal(t, vm.ADD, ops[2].Code)
	assert.Equal(t, vm.STOP, ops[3].Code)
}

func TestOpIxMapPushDataSharesPushIndex(t *testing.T) {
	// PUSH1 0x5b ; JUMP
	code := []byte{byte(vm.PUSH1), 0x5b, byte(vm.JUMP)}
	ixMap := mkOpIxMap(code)
	assert.Equal(t, ixMap[0], ixMap[1], "the immediate byte shares its PUSH's op index")
	assert.NotEqual(t, ixMap[1], ixMap[2])
}

func TestOpIxMapTruncatedTrailingPush(t *testing.T) {
	// PUSH2 with only one trailing byte (e.g. Solidity metadata cut off)
	code := []byte{byte(vm.PUSH2), 0x01}
	ixMap := mkOpIxMap(code)
	assert.Equal(t, ixMap[0], ixMap[1])

	ops := mkCodeOps(code)
	assert.Len(t, ops, 1)
}

package sevm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
var testCaller = common.HexToAddress("0x2222222222222222222222222222222222222222")

func newTestVM(code []byte) *VM {
	return NewVM(VMOpts{
		Code:    code,
		Address: testAddr,
		Caller:  testCaller,
	})
}

func TestArithmeticScenario(t *testing.T) {
	// PUSH1 5; PUSH1 3; ADD; STOP
	code := []byte{byte(vm.PUSH1), 5, byte(vm.PUSH1), 3, byte(vm.ADD), byte(vm.STOP)}
	m := newTestVM(code)

	Step(m)
	Step(m)
	Step(m)
	require.Equal(t, uint64(8), m.State.Stack.Peek().Uint64())

	Step(m)
	require.NotNil(t, m.Result)
	assert.True(t, m.Result.Done)
	assert.Nil(t, m.Result.Err)
	assert.Empty(t, m.Result.Returndata)
}

func TestDivisionByZero(t *testing.T) {
	// PUSH1 0; PUSH1 5; DIV
	code := []byte{byte(vm.PUSH1), 0, byte(vm.PUSH1), 5, byte(vm.DIV)}
	m := newTestVM(code)
	Step(m)
	Step(m)
	Step(m)
	assert.Equal(t, uint64(0), m.State.Stack.Peek().Uint64())
	assert.Nil(t, m.Result)
}

func TestBadJump(t *testing.T) {
	// PUSH1 0; JUMP
	code := []byte{byte(vm.PUSH1), 0, byte(vm.JUMP)}
	m := newTestVM(code)
	Step(m)
	Step(m)
	require.NotNil(t, m.Result)
	assert.True(t, m.Result.Done)
	assert.ErrorIs(t, m.Result.Err, ErrBadJumpDestination)
}

func TestCheckJumpRejectsPushImmediateData(t *testing.T) {
	// PUSH1 0x5b; JUMP -- code[1] looks like JUMPDEST but is push data
	code := []byte{byte(vm.PUSH1), 0x5b, byte(vm.JUMP)}
	m := newTestVM(code)
	assert.False(t, checkJump(m, 1))
}

func TestCheckJumpAcceptsRealJumpdest(t *testing.T) {
	code := []byte{byte(vm.JUMPDEST), byte(vm.STOP)}
	m := newTestVM(code)
	assert.True(t, checkJump(m, 0))
}

func TestStackUnderflowUnwinds(t *testing.T) {
	// ADD needs two operands; an empty stack must unwind with
	// ErrStackUnderrun rather than panic with an index-out-of-range.
	code := []byte{byte(vm.ADD)}
	m := newTestVM(code)
	Step(m)
	require.NotNil(t, m.Result)
	assert.True(t, m.Result.Done)
	assert.ErrorIs(t, m.Result.Err, ErrStackUnderrun)
}

func TestJumpInsideCreateInitCode(t *testing.T) {
	// init code: JUMP straight to a JUMPDEST, then RETURN empty. Before
	// checkJump/vmOpIx read the live frame's own OpIxMap, this indexed the
	// new (not-yet-installed) account's empty opIxMap and crashed with an
	// uncaught index-out-of-range panic.
	initCode := []byte{
		byte(vm.PUSH1), 3, // jump target
		byte(vm.JUMP),
		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 0, // size
		byte(vm.PUSH1), 0, // offset
		byte(vm.RETURN),
	}
	lit := make([]byte, 32)
	copy(lit, initCode)

	callerCode := []byte{byte(vm.PUSH32)}
	callerCode = append(callerCode, lit...)
	callerCode = append(callerCode,
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), byte(len(initCode)),
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.CREATE),
	)

	m := newTestVM(callerCode)
	currentContract(m).Balance = W256FromUint64(100)

	for i := 0; i < 30 && (m.Result == nil || !m.Result.Done); i++ {
		Step(m)
	}
	require.NotNil(t, m.Result)
	require.True(t, m.Result.Done)
	assert.Nil(t, m.Result.Err)
}

func TestSstoreSloadRoundTrip(t *testing.T) {
	// PUSH1 0x2a; PUSH1 1; SSTORE; PUSH1 1; SLOAD
	code := []byte{
		byte(vm.PUSH1), 0x2a,
		byte(vm.PUSH1), 1,
		byte(vm.SSTORE),
		byte(vm.PUSH1), 1,
		byte(vm.SLOAD),
	}
	m := newTestVM(code)
	for i := 0; i < 5; i++ {
		Step(m)
	}
	assert.Equal(t, uint64(0x2a), m.State.Stack.Peek().Uint64())

	// storing 0 at the same key deletes it
	code2 := []byte{
		byte(vm.PUSH1), 0x2a,
		byte(vm.PUSH1), 1,
		byte(vm.SSTORE),
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 1,
		byte(vm.SSTORE),
	}
	m2 := newTestVM(code2)
	for i := 0; i < 6; i++ {
		Step(m2)
	}
	_, present := currentContract(m2).Storage[*W256FromUint64(1)]
	assert.False(t, present)
}

func TestCallRevertRestoresWorld(t *testing.T) {
	calleeAddr := common.HexToAddress("0x3333333333333333333333333333333333333333")
	// callee: PUSH1 0x99; PUSH1 0; SSTORE; PUSH1 0; PUSH1 0; REVERT
	calleeCode := []byte{
		byte(vm.PUSH1), 0x99,
		byte(vm.PUSH1), 0,
		byte(vm.SSTORE),
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.REVERT),
	}
	// caller: PUSH1 0(outsize) PUSH1 0(outoff) PUSH1 0(insize) PUSH1 0(inoff)
	// PUSH1 0(value) PUSH20 calleeAddr PUSH1 0(gas) CALL
	callerCode := []byte{
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
	}
	callerCode = append(callerCode, byte(vm.PUSH20))
	callerCode = append(callerCode, calleeAddr.Bytes()...)
	callerCode = append(callerCode, byte(vm.PUSH1), 0, byte(vm.CALL))

	m := newTestVM(callerCode)
	m.Env.Contracts[calleeAddr] = NewContract(calleeCode)

	before := m.Env.snapshot()

	for i := 0; i < 30 && (m.Result == nil || !m.Result.Done); i++ {
		Step(m)
	}
	require.NotNil(t, m.Result)
	require.True(t, m.Result.Done)

	// callee's SSTORE must not have survived the revert
	callee := m.Env.Contracts[calleeAddr]
	_, present := callee.Storage[*ZeroW256()]
	assert.False(t, present)
	assert.Equal(t, uint64(0), m.State.Stack.Peek().Uint64(), "CALL pushes 0 on revert")

	_ = before
}

func TestCreateAndReturnInstallsContract(t *testing.T) {
	// init code: write runtime bytes 0x60 0x00 into memory one byte at a
	// time (value, offset, MSTORE8 -- MSTORE8 pops offset off the top,
	// then value), then RETURN(0, 2) so the new account's code is {0x60,
	// 0x00} rather than empty, exercising the non-empty performCreation path.
	initCode := []byte{
		byte(vm.PUSH1), 0x60,
		byte(vm.PUSH1), 0, // offset 0
		byte(vm.MSTORE8),
		byte(vm.PUSH1), 0x00,
		byte(vm.PUSH1), 1, // offset 1
		byte(vm.MSTORE8),
		byte(vm.PUSH1), 2, // size
		byte(vm.PUSH1), 0, // offset
		byte(vm.RETURN),
	}
	lit := make([]byte, 32)
	copy(lit, initCode)

	callerCode := []byte{byte(vm.PUSH32)}
	callerCode = append(callerCode, lit...)
	callerCode = append(callerCode,
		byte(vm.PUSH1), 0, // offset
		byte(vm.MSTORE),
		byte(vm.PUSH1), byte(len(initCode)), // size
		byte(vm.PUSH1), 0, // offset
		byte(vm.PUSH1), 0, // value
		byte(vm.CREATE),
	)

	m := newTestVM(callerCode)
	self := currentContract(m)
	self.Balance = W256FromUint64(100)

	for i := 0; i < 30 && (m.Result == nil || !m.Result.Done); i++ {
		Step(m)
	}
	require.NotNil(t, m.Result)
	require.True(t, m.Result.Done)

	require.Equal(t, uint64(1), currentContract(m).Nonce)
	top := m.State.Stack.Peek()
	newAddr := common.Address(top.Bytes20())
	assert.NotEqual(t, ZeroAddr, newAddr)
	installed, ok := m.Env.Contracts[newAddr]
	require.True(t, ok)
	assert.Equal(t, []byte{0x60, 0x00}, installed.Bytecode)
}

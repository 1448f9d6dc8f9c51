package sevm

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"
)

// executionFunc is one opcode's effect on the VM: it may mutate the live
// frame state and/or the world, and return a recoverable error which exec1
// turns into a one-frame unwind (spec.md section 7). Ported from the teacher's
// executionFunc(*Context) error, retargeted at *VM.
type executionFunc func(*VM) error

// Operation is one opcode's dispatch table entry. Unlike the teacher's
// Operation, there is no GasCost field: gas metering is out of scope
// (spec.md section 1) and GAS always returns GasStub. NStackIn is kept,
// restored from the teacher's make_op, so exec1 can reject an underflowing
// opcode before Exec ever runs (spec.md section 4.3/section 6).
type Operation struct {
	Code     OpCode
	NStackIn int
	Exec     executionFunc
}

var OpTable map[OpCode]*Operation

func opEntry(code OpCode, nStackIn int, exec executionFunc) *Operation {
	return &Operation{Code: code, NStackIn: nStackIn, Exec: exec}
}

func init() {
	OpTable = map[OpCode]*Operation{
		vm.STOP:       opEntry(vm.STOP, 0, opStop),
		vm.ADD:        opEntry(vm.ADD, 2, opAdd),
		vm.MUL:        opEntry(vm.MUL, 2, opMul),
		vm.SUB:        opEntry(vm.SUB, 2, opSub),
		vm.DIV:        opEntry(vm.DIV, 2, opDiv),
		vm.SDIV:       opEntry(vm.SDIV, 2, opSdiv),
		vm.MOD:        opEntry(vm.MOD, 2, opMod),
		vm.SMOD:       opEntry(vm.SMOD, 2, opSmod),
		vm.ADDMOD:     opEntry(vm.ADDMOD, 3, opAddmod),
		vm.MULMOD:     opEntry(vm.MULMOD, 3, opMulmod),
		vm.EXP:        opEntry(vm.EXP, 2, opExp),
		vm.SIGNEXTEND: opEntry(vm.SIGNEXTEND, 2, opSignExtend),

		vm.LT:     opEntry(vm.LT, 2, opLt),
		vm.GT:     opEntry(vm.GT, 2, opGt),
		vm.SLT:    opEntry(vm.SLT, 2, opSlt),
		vm.SGT:    opEntry(vm.SGT, 2, opSgt),
		vm.EQ:     opEntry(vm.EQ, 2, opEq),
		vm.ISZERO: opEntry(vm.ISZERO, 1, opIszero),
		vm.AND:    opEntry(vm.AND, 2, opAnd),
		vm.OR:     opEntry(vm.OR, 2, opOr),
		vm.XOR:    opEntry(vm.XOR, 2, opXor),
		vm.NOT:    opEntry(vm.NOT, 1, opNot),
		vm.BYTE:   opEntry(vm.BYTE, 2, opByte),
		vm.SHL:    opEntry(vm.SHL, 2, opSHL),
		vm.SHR:    opEntry(vm.SHR, 2, opSHR),
		vm.SAR:    opEntry(vm.SAR, 2, opSAR),

		vm.SHA3: opEntry(vm.SHA3, 2, opSha3),

		vm.ADDRESS:        opEntry(vm.ADDRESS, 0, opAddress),
		vm.BALANCE:        opEntry(vm.BALANCE, 1, opBalance),
		vm.ORIGIN:         opEntry(vm.ORIGIN, 0, opOrigin),
		vm.CALLER:         opEntry(vm.CALLER, 0, opCaller),
		vm.CALLVALUE:      opEntry(vm.CALLVALUE, 0, opCallValue),
		vm.CALLDATALOAD:   opEntry(vm.CALLDATALOAD, 1, opCallDataLoad),
		vm.CALLDATASIZE:   opEntry(vm.CALLDATASIZE, 0, opCallDataSize),
		vm.CALLDATACOPY:   opEntry(vm.CALLDATACOPY, 3, opCallDataCopy),
		vm.CODESIZE:       opEntry(vm.CODESIZE, 0, opCodeSize),
		vm.CODECOPY:       opEntry(vm.CODECOPY, 3, opCodeCopy),
		vm.GASPRICE:       opEntry(vm.GASPRICE, 0, opGasprice),
		vm.EXTCODESIZE:    opEntry(vm.EXTCODESIZE, 1, opExtCodeSize),
		vm.EXTCODECOPY:    opEntry(vm.EXTCODECOPY, 4, opExtCodeCopy),
		vm.RETURNDATASIZE: opEntry(vm.RETURNDATASIZE, 0, opReturnDataSize),
		vm.RETURNDATACOPY: opEntry(vm.RETURNDATACOPY, 3, opReturnDataCopy),
		vm.EXTCODEHASH:    opEntry(vm.EXTCODEHASH, 1, opExtCodeHash),

		vm.BLOCKHASH:   opEntry(vm.BLOCKHASH, 1, opBlockhash),
		vm.COINBASE:    opEntry(vm.COINBASE, 0, opCoinbase),
		vm.TIMESTAMP:   opEntry(vm.TIMESTAMP, 0, opTimestamp),
		vm.NUMBER:      opEntry(vm.NUMBER, 0, opNumber),
		vm.DIFFICULTY:  opEntry(vm.DIFFICULTY, 0, opDifficulty),
		vm.GASLIMIT:    opEntry(vm.GASLIMIT, 0, opGasLimit),
		vm.CHAINID:     opEntry(vm.CHAINID, 0, opChainID),
		vm.SELFBALANCE: opEntry(vm.SELFBALANCE, 0, opSelfBalance),
		vm.BASEFEE:     opEntry(vm.BASEFEE, 0, opBaseFee),

		vm.POP:     opEntry(vm.POP, 1, opPop),
		vm.MLOAD:   opEntry(vm.MLOAD, 1, opMload),
		vm.MSTORE:  opEntry(vm.MSTORE, 2, opMstore),
		vm.MSTORE8: opEntry(vm.MSTORE8, 2, opMstore8),
		vm.SLOAD:   opEntry(vm.SLOAD, 1, opSload),
		vm.SSTORE:  opEntry(vm.SSTORE, 2, opSstore),

		vm.JUMP:     opEntry(vm.JUMP, 1, opJump),
		vm.JUMPI:    opEntry(vm.JUMPI, 2, opJumpi),
		vm.PC:       opEntry(vm.PC, 0, opPc),
		vm.MSIZE:    opEntry(vm.MSIZE, 0, opMsize),
		vm.GAS:      opEntry(vm.GAS, 0, opGas),
		vm.JUMPDEST: opEntry(vm.JUMPDEST, 0, opJumpdest),

		// CREATE/CREATE2's NStackIn corrects an apparent off-by-zero in the
		// teacher's own table (both listed there as requiring 0 stack
		// items, despite doCreate popping 3/4) rather than reproducing it.
		vm.CREATE:       opEntry(vm.CREATE, 3, opCreate),
		vm.CALL:         opEntry(vm.CALL, 7, opCall),
		vm.CALLCODE:     opEntry(vm.CALLCODE, 7, opCallCode),
		vm.RETURN:       opEntry(vm.RETURN, 2, opReturn),
		vm.DELEGATECALL: opEntry(vm.DELEGATECALL, 6, opDelegateCall),
		vm.CREATE2:      opEntry(vm.CREATE2, 4, opCreate2),
		vm.STATICCALL:   opEntry(vm.STATICCALL, 6, opStaticCall),
		vm.REVERT:       opEntry(vm.REVERT, 2, opRevert),
		vm.SELFDESTRUCT: opEntry(vm.SELFDESTRUCT, 1, opSuicide),
	}
	for n := 1; n <= 32; n++ {
		b := vm.PUSH1 + OpCode(n-1)
		OpTable[b] = opEntry(b, 0, makePush(n))
	}
	for n := 1; n <= 16; n++ {
		b := vm.DUP1 + OpCode(n-1)
		OpTable[b] = opEntry(b, n, makeDup(n))
	}
	for n := 1; n <= 16; n++ {
		b := vm.SWAP1 + OpCode(n-1)
		OpTable[b] = opEntry(b, n+1, makeSwap(n))
	}
	for n := 0; n <= 4; n++ {
		b := vm.LOG0 + OpCode(n)
		OpTable[b] = opEntry(b, 2+n, makeLog(n))
	}
}

// Step advances the VM by exactly one opcode, per exec1's contract in
// spec.md section 4.9/section 6. It is safe to call again after it returns:
// once m.Result is set the call is a no-op.
func Step(m *VM) {
	if m.Result != nil && m.Result.Done {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*internalError)
			if !ok {
				panic(r)
			}
			m.Result = &VMResult{Done: true, Err: errors.Wrap(ErrInternal, ie.Error())}
		}
	}()
	exec1(m)
}

// Run steps the VM to completion, used by callers (and tests) that don't
// need to inspect intermediate states.
func Run(m *VM) *VMResult {
	for m.Result == nil || !m.Result.Done {
		if m.Result == nil {
			m.Result = &VMResult{}
		}
		Step(m)
	}
	return m.Result
}

func exec1(m *VM) {
	code := m.State.Code
	pc := m.State.Pc
	if pc >= uint64(len(code)) {
		haltStop(m)
		return
	}
	b := OpCode(code[pc])
	entry, ok := OpTable[b]
	if !ok {
		unwind(m, &UnrecognizedOpcodeError{Byte: byte(b)})
		return
	}
	if m.State.Stack.Len() < entry.NStackIn {
		unwind(m, ErrStackUnderrun)
		return
	}
	m.State.Pc = pc + uint64(opSize(b))
	if err := entry.Exec(m); err != nil {
		unwind(m, err)
	}
}

// unwind is the single error path shared by REVERT and every other
// recoverable failure (spec.md section 4.6/section 7): pop the current frame,
// restore or delete world state per its context, push 0 to the resumed
// caller. An empty frame stack makes this the VM's terminal result instead.
func unwind(m *VM, err error) {
	frame, ok := popFrame(m)
	if !ok {
		m.Result = &VMResult{Done: true, Err: err}
		return
	}
	var data []byte
	if re, ok := err.(*RevertError); ok {
		data = re.Data
	}
	switch ctx := frame.Context.(type) {
	case CreationContext:
		delete(m.Env.Contracts, ctx.NewAddr)
	case CallContext:
		m.Env.restore(ctx.Reversion)
	}
	m.State = frame.Saved
	m.State.Returndata = data
	m.State.Stack.Push(*boolW256(false))
	m.ContextTrace.Ascend()
}

func pushFrame(m *VM, ctx FrameContext, saved FrameState) {
	m.Frames = append(m.Frames, Frame{Context: ctx, Saved: saved})
	m.ContextTrace.Descend(ctx)
}

func popFrame(m *VM) (Frame, bool) {
	if len(m.Frames) == 0 {
		return Frame{}, false
	}
	f := m.Frames[len(m.Frames)-1]
	m.Frames = m.Frames[:len(m.Frames)-1]
	return f, true
}

// haltStop implements STOP and implicit end-of-code (spec.md section 4.6/4.9).
func haltStop(m *VM) {
	frame, ok := popFrame(m)
	if !ok {
		m.Result = &VMResult{Done: true}
		return
	}
	m.State = frame.Saved
	m.State.Stack.Push(*boolW256(true))
	m.ContextTrace.Ascend()
}

// --- arithmetic (spec.md section 4.3) ---

func opAdd(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Add(&x, y)
	return nil
}
func opSub(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Sub(&x, y)
	return nil
}
func opMul(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Mul(&x, y)
	return nil
}
func opDiv(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Div(&x, y)
	return nil
}
func opSdiv(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.SDiv(&x, y)
	return nil
}
func opMod(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Mod(&x, y)
	return nil
}
func opSmod(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.SMod(&x, y)
	return nil
}
func opAddmod(m *VM) error {
	s := &m.State.Stack
	x, y, z := s.Pop(), s.Pop(), s.Peek()
	z.AddMod(&x, &y, z)
	return nil
}
func opMulmod(m *VM) error {
	s := &m.State.Stack
	x, y, z := s.Pop(), s.Pop(), s.Peek()
	z.MulMod(&x, &y, z)
	return nil
}
func opExp(m *VM) error {
	s := &m.State.Stack
	base, exponent := s.Pop(), s.Peek()
	exponent.Exp(&base, exponent)
	return nil
}

// opSignExtend implements SIGNEXTEND(b, x): sign-extends x from its
// (b+1)*8-th bit to 256 bits; b>=32 leaves x unchanged.
func opSignExtend(m *VM) error {
	s := &m.State.Stack
	back, num := s.Pop(), s.Peek()
	num.ExtendSign(num, &back)
	return nil
}

// --- comparison / bitwise (spec.md section 4.3) ---

func opLt(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	*y = *boolW256(x.Lt(y))
	return nil
}
func opGt(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	*y = *boolW256(x.Gt(y))
	return nil
}
func opSlt(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	*y = *boolW256(x.Slt(y))
	return nil
}
func opSgt(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	*y = *boolW256(x.Sgt(y))
	return nil
}
func opEq(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	*y = *boolW256(x.Eq(y))
	return nil
}
func opIszero(m *VM) error {
	x := m.State.Stack.Peek()
	*x = *boolW256(x.IsZero())
	return nil
}
func opAnd(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.And(&x, y)
	return nil
}
func opOr(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Or(&x, y)
	return nil
}
func opXor(m *VM) error {
	s := &m.State.Stack
	x, y := s.Pop(), s.Peek()
	y.Xor(&x, y)
	return nil
}
func opNot(m *VM) error {
	x := m.State.Stack.Peek()
	x.Not(x)
	return nil
}

// opByte: n-th byte of x counting from the most significant end; n>=32 ⇒ 0.
func opByte(m *VM) error {
	s := &m.State.Stack
	n, x := s.Pop(), s.Peek()
	*x = *byteAt(n.Uint64(), x)
	return nil
}

func opSHL(m *VM) error {
	s := &m.State.Stack
	shift, value := s.Pop(), s.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}
func opSHR(m *VM) error {
	s := &m.State.Stack
	shift, value := s.Pop(), s.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}
func opSAR(m *VM) error {
	s := &m.State.Stack
	shift, value := s.Pop(), s.Peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil
}

func opSha3(m *VM) error {
	s := &m.State.Stack
	offset, size := s.Pop(), s.Peek()
	off, sz := offset.Uint64(), size.Uint64()
	data := m.State.Memory.Slice(off, sz)
	m.State.accessMemoryRange(off, sz)
	hash := keccak256(data)
	m.Env.Sha3Crack[*hash] = data
	*size = *hash
	return nil
}

// --- environment (spec.md section 4.3/4.4 context opcodes) ---

func addrToW256(a Addr) *W256 { return new(W256).SetBytes(a.Bytes()) }

func opAddress(m *VM) error {
	m.State.Stack.Push(*addrToW256(m.State.Contract))
	return nil
}
func opBalance(m *VM) error {
	slot := m.State.Stack.Peek()
	addr := Addr(slot.Bytes20())
	*slot = *touchAccount(m.Env, addr).Balance
	return nil
}
func opOrigin(m *VM) error {
	m.State.Stack.Push(*addrToW256(m.Env.Origin))
	return nil
}
func opCaller(m *VM) error {
	m.State.Stack.Push(*addrToW256(m.State.Caller))
	return nil
}
func opCallValue(m *VM) error {
	m.State.Stack.Push(*m.State.Callvalue)
	return nil
}

// getData slices [start,start+size) out of data, zero-padding past the end;
// overflow-safe the way the teacher's opcode.go getData is.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	out := make([]byte, size)
	copy(out, data[start:end])
	return out
}

func opCallDataLoad(m *VM) error {
	off := m.State.Stack.Peek()
	offset, overflow := off.Uint64WithOverflow()
	if overflow {
		off.Clear()
		return nil
	}
	off.SetBytes(getData(m.State.Calldata, offset, 32))
	return nil
}
func opCallDataSize(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(uint64(len(m.State.Calldata))))
	return nil
}
func opCallDataCopy(m *VM) error {
	s := &m.State.Stack
	memOffset, dataOffset, size := s.Pop(), s.Pop(), s.Pop()
	dOff, sz := dataOffset.Uint64(), size.Uint64()
	m.State.Memory.WriteRange(getData(m.State.Calldata, dOff, sz), sz, 0, memOffset.Uint64())
	m.State.accessMemoryRange(memOffset.Uint64(), sz)
	return nil
}
func opCodeSize(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(uint64(len(m.State.Code))))
	return nil
}
func opCodeCopy(m *VM) error {
	s := &m.State.Stack
	memOffset, codeOffset, size := s.Pop(), s.Pop(), s.Pop()
	cOff, sz := codeOffset.Uint64(), size.Uint64()
	m.State.Memory.WriteRange(getData(m.State.Code, cOff, sz), sz, 0, memOffset.Uint64())
	m.State.accessMemoryRange(memOffset.Uint64(), sz)
	return nil
}
func opGasprice(m *VM) error {
	m.State.Stack.Push(*ZeroW256())
	return nil
}
func opExtCodeSize(m *VM) error {
	slot := m.State.Stack.Peek()
	addr := Addr(slot.Bytes20())
	*slot = *W256FromUint64(uint64(touchAccount(m.Env, addr).CodeSize()))
	return nil
}
func opExtCodeCopy(m *VM) error {
	s := &m.State.Stack
	a, memOffset, codeOffset, size := s.Pop(), s.Pop(), s.Pop(), s.Pop()
	addr := Addr(a.Bytes20())
	code := touchAccount(m.Env, addr).Bytecode
	cOff, sz := codeOffset.Uint64(), size.Uint64()
	m.State.Memory.WriteRange(getData(code, cOff, sz), sz, 0, memOffset.Uint64())
	m.State.accessMemoryRange(memOffset.Uint64(), sz)
	return nil
}
func opReturnDataSize(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(uint64(len(m.State.Returndata))))
	return nil
}
func opReturnDataCopy(m *VM) error {
	s := &m.State.Stack
	memOffset, dataOffset, size := s.Pop(), s.Pop(), s.Pop()
	dOff, sz := dataOffset.Uint64(), size.Uint64()
	if dOff+sz > uint64(len(m.State.Returndata)) {
		return errors.New("return data out of bounds")
	}
	m.State.Memory.WriteRange(m.State.Returndata, sz, dOff, memOffset.Uint64())
	m.State.accessMemoryRange(memOffset.Uint64(), sz)
	return nil
}
func opExtCodeHash(m *VM) error {
	slot := m.State.Stack.Peek()
	addr := Addr(slot.Bytes20())
	c, ok := m.Env.Contracts[addr]
	if !ok {
		slot.Clear()
		return nil
	}
	*slot = c.Codehash
	return nil
}

// opBlockhash: block-hash lookup is out of scope (spec.md section 1 Non-goals);
// always returns 0, as any query necessarily misses.
func opBlockhash(m *VM) error {
	m.State.Stack.Peek().Clear()
	return nil
}
func opCoinbase(m *VM) error {
	m.State.Stack.Push(*addrToW256(m.Block.Coinbase))
	return nil
}
func opTimestamp(m *VM) error {
	m.State.Stack.Push(*m.Block.Timestamp)
	return nil
}
func opNumber(m *VM) error {
	m.State.Stack.Push(*m.Block.Number)
	return nil
}
func opDifficulty(m *VM) error {
	m.State.Stack.Push(*m.Block.Difficulty)
	return nil
}
func opGasLimit(m *VM) error {
	m.State.Stack.Push(*m.Block.GasLimit)
	return nil
}
func opChainID(m *VM) error {
	m.State.Stack.Push(*ZeroW256())
	return nil
}
func opSelfBalance(m *VM) error {
	m.State.Stack.Push(*currentContract(m).Balance)
	return nil
}
func opBaseFee(m *VM) error {
	m.State.Stack.Push(*ZeroW256())
	return nil
}

// --- stack / memory primitives (spec.md section 4.4/4.5) ---

func opPop(m *VM) error {
	m.State.Stack.Pop()
	return nil
}
func opMload(m *VM) error {
	v := m.State.Stack.Peek()
	offset := v.Uint64()
	m.State.accessMemoryRange(offset, 32)
	*v = *m.State.Memory.ReadWord(offset)
	return nil
}
func opMstore(m *VM) error {
	s := &m.State.Stack
	ptr, val := s.Pop(), s.Pop()
	offset := ptr.Uint64()
	m.State.Memory.WriteWord(offset, &val)
	m.State.accessMemoryRange(offset, 32)
	return nil
}
func opMstore8(m *VM) error {
	s := &m.State.Stack
	ptr, val := s.Pop(), s.Pop()
	offset := ptr.Uint64()
	m.State.Memory.WriteByte(offset, byte(val.Uint64()))
	m.State.accessMemoryRange(offset, 1)
	return nil
}
func opSload(m *VM) error {
	slot := m.State.Stack.Peek()
	*slot = currentContract(m).SLoad(*slot)
	return nil
}
func opSstore(m *VM) error {
	s := &m.State.Stack
	key, val := s.Pop(), s.Pop()
	currentContract(m).SStore(key, val)
	return nil
}

// --- control flow: PC, jumps, push, dup, swap (spec.md section 4.5) ---

// checkJump validates a jump target: in range, a JUMPDEST byte, and not
// itself the middle of a PUSH's immediate data (opIxMap distinguishes the
// two). opIxMap[-1] is treated as distinct from any real index. Reads the
// live frame's own OpIxMap (m.State), not the code-owning account's cached
// one -- a CREATE/CREATE2 init frame's code isn't installed on any account
// yet, so its jump table only exists on the frame.
func checkJump(m *VM, dest uint64) bool {
	code := m.State.Code
	if dest >= uint64(len(code)) || OpCode(code[dest]) != vm.JUMPDEST {
		return false
	}
	ixMap := m.State.OpIxMap
	if dest == 0 {
		return true
	}
	return ixMap[dest] != ixMap[dest-1]
}

func opJump(m *VM) error {
	dest := m.State.Stack.Pop()
	d, overflow := dest.Uint64WithOverflow()
	if overflow || !checkJump(m, d) {
		return ErrBadJumpDestination
	}
	m.State.Pc = d
	return nil
}
func opJumpi(m *VM) error {
	s := &m.State.Stack
	dest, cond := s.Pop(), s.Pop()
	if cond.IsZero() {
		return nil
	}
	d, overflow := dest.Uint64WithOverflow()
	if overflow || !checkJump(m, d) {
		return ErrBadJumpDestination
	}
	m.State.Pc = d
	return nil
}
func opJumpdest(m *VM) error { return nil }

// opPc pushes the program counter as it was before this opcode was
// decoded: exec1 advances m.State.Pc by opSize(PC) (== 1) before dispatch,
// so the entry pc is the current value minus 1 (spec.md section 4.5).
func opPc(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(m.State.Pc - 1))
	return nil
}
func opMsize(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(m.State.MemorySize * 32))
	return nil
}
func opGas(m *VM) error {
	m.State.Stack.Push(*W256FromUint64(GasStub))
	return nil
}

// makePush reads n immediate bytes ending at the (already advanced) pc and
// pushes them big-endian. readOp/opSize guarantee the immediate is exactly
// n bytes wide except at a truncated tail, which mkCodeOps already warned
// about at decode time; here we only need the same zero-extension.
func makePush(n int) executionFunc {
	return func(m *VM) error {
		end := m.State.Pc
		start := end - uint64(n)
		buf := make([]byte, n)
		code := m.State.Code
		if start < uint64(len(code)) {
			copy(buf, getData(code, start, uint64(n)))
		}
		m.State.Stack.Push(*new(W256).SetBytes(buf))
		return nil
	}
}
// makeDup/makeSwap no longer check stack depth themselves: exec1 checks
// every opcode's Operation.NStackIn before Exec runs, so by the time these
// run the stack is already known deep enough.
func makeDup(n int) executionFunc {
	return func(m *VM) error {
		m.State.Stack.Dup(n)
		return nil
	}
}
func makeSwap(n int) executionFunc {
	return func(m *VM) error {
		m.State.Stack.Swap(n + 1)
		return nil
	}
}

// --- logs (spec.md section 4.7, extended per section 9/11(a) to access memory) ---

func makeLog(n int) executionFunc {
	return func(m *VM) error {
		s := &m.State.Stack
		offset, size := s.Pop(), s.Pop()
		topics := make([]W256, n)
		for i := 0; i < n; i++ {
			topics[i] = s.Pop()
		}
		off, sz := offset.Uint64(), size.Uint64()
		data := m.State.Memory.Slice(off, sz)
		m.State.accessMemoryRange(off, sz)
		l := Log{Address: m.State.Contract, Data: data, Topics: topics}
		m.ContextTrace.RecordLog(l)
		return nil
	}
}

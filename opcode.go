package sevm

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/fatih/color"
)

// OpCode is the one-byte EVM instruction identifier. The numeric values and
// their String() form are reused from go-ethereum/core/vm rather than
// re-declared here; this package rebuilds the interpreter's stack, memory
// and frame machinery per spec, but there is nothing domain-specific to
// relearn about what byte 0x01 is called.
type OpCode = vm.OpCode

// Op is a decoded instruction: the opcode itself, plus the immediate value
// for PUSH1..PUSH32 (nil for every other opcode).
type Op struct {
	Code OpCode
	Push *W256 // only set for PUSHn
}

func (o Op) String() string {
	if o.Push != nil {
		return o.Code.String() + " " + o.Push.Hex()
	}
	return o.Code.String()
}

// isPush reports whether b is PUSH1..PUSH32.
func isPush(b OpCode) bool {
	return b >= vm.PUSH1 && b <= vm.PUSH32
}

// opSize returns the number of bytes an instruction occupies: the opcode
// byte itself plus, for PUSHn, its n immediate bytes.
func opSize(b OpCode) int {
	if isPush(b) {
		return 2 + int(b) - int(vm.PUSH1)
	}
	return 1
}

// knownOpcodes backs isKnownOpcode. readOp does not mark bytes missing from
// this table: they decode as a plain Op{Code: b}, like any other non-PUSH
// byte. Executing one fails with an UnrecognizedOpcodeError.
var knownOpcodes = buildKnownOpcodes()

func buildKnownOpcodes() map[OpCode]bool {
	known := map[OpCode]bool{
		vm.STOP: true, vm.ADD: true, vm.MUL: true, vm.SUB: true, vm.DIV: true,
		vm.SDIV: true, vm.MOD: true, vm.SMOD: true, vm.ADDMOD: true, vm.MULMOD: true,
		vm.EXP: true, vm.SIGNEXTEND: true,
		vm.LT: true, vm.GT: true, vm.SLT: true, vm.SGT: true, vm.EQ: true, vm.ISZERO: true,
		vm.AND: true, vm.OR: true, vm.XOR: true, vm.NOT: true, vm.BYTE: true,
		vm.SHL: true, vm.SHR: true, vm.SAR: true,
		vm.SHA3:    true,
		vm.ADDRESS: true, vm.BALANCE: true, vm.ORIGIN: true, vm.CALLER: true,
		vm.CALLVALUE: true, vm.CALLDATALOAD: true, vm.CALLDATASIZE: true, vm.CALLDATACOPY: true,
		vm.CODESIZE: true, vm.CODECOPY: true, vm.GASPRICE: true,
		vm.EXTCODESIZE: true, vm.EXTCODECOPY: true,
		vm.RETURNDATASIZE: true, vm.RETURNDATACOPY: true, vm.EXTCODEHASH: true,
		vm.BLOCKHASH: true, vm.COINBASE: true, vm.TIMESTAMP: true, vm.NUMBER: true,
		vm.DIFFICULTY: true, vm.GASLIMIT: true, vm.CHAINID: true, vm.SELFBALANCE: true,
		vm.BASEFEE: true,
		vm.POP:     true, vm.MLOAD: true, vm.MSTORE: true, vm.MSTORE8: true,
		vm.SLOAD:   true, vm.SSTORE: true,
		vm.JUMP: true, vm.JUMPI: true, vm.PC: true, vm.MSIZE: true, vm.GAS: true, vm.JUMPDEST: true,
		vm.LOG0: true, vm.LOG1: true, vm.LOG2: true, vm.LOG3: true, vm.LOG4: true,
		vm.CREATE: true, vm.CALL: true, vm.CALLCODE: true, vm.RETURN: true,
		vm.DELEGATECALL: true, vm.CREATE2: true, vm.STATICCALL: true,
		vm.REVERT: true, vm.SELFDESTRUCT: true,
	}
	for b := vm.PUSH1; b <= vm.PUSH32; b++ {
		known[b] = true
	}
	for b := vm.DUP1; b <= vm.DUP16; b++ {
		known[b] = true
	}
	for b := vm.SWAP1; b <= vm.SWAP16; b++ {
		known[b] = true
	}
	return known
}

func isKnownOpcode(b OpCode) bool {
	return knownOpcodes[b]
}

// readOp decodes the instruction starting at byte b, given the tail of
// code that follows it (exactly opSize(b)-1 bytes, shorter only if the
// code ends mid-immediate). For PUSHn, the immediate is parsed big-endian,
// and a short tail is treated as zero-padded on the right -- the same
// convention the real EVM uses for a PUSH whose argument runs past the end
// of the code.
func readOp(b OpCode, tail []byte) Op {
	if !isPush(b) {
		return Op{Code: b}
	}
	n := opSize(b) - 1
	buf := make([]byte, n)
	copy(buf, tail) // tail shorter than n zero-extends the rest
	return Op{Code: b, Push: new(W256).SetBytes(buf)}
}

// mkOpIxMap returns, for every byte of code, the index into mkCodeOps of
// the operation that byte belongs to. PUSHn's immediate bytes share the
// index of the PUSH opcode itself, which is exactly what makes them
// unreachable JUMPDESTs: checkJump compares this map across the jump
// target's neighboring byte to tell "real opcode" from "push data".
func mkOpIxMap(code []byte) []int {
	ixMap := make([]int, len(code))
	pc := 0
	opIx := 0
	for pc < len(code) {
		b := OpCode(code[pc])
		size := opSize(b)
		if pc+size > len(code) {
			size = len(code) - pc // truncated trailing push, e.g. Solidity metadata
		}
		for i := 0; i < size; i++ {
			ixMap[pc+i] = opIx
		}
		pc += size
		opIx++
	}
	return ixMap
}

// mkCodeOps returns the flat, decoded operation sequence for code.
func mkCodeOps(code []byte) []Op {
	var ops []Op
	pc := 0
	for pc < len(code) {
		b := OpCode(code[pc])
		size := opSize(b)
		if pc+size > len(code) {
			// not enough bytes left for this PUSH's immediate: Solidity's
			// trailing CBOR metadata is the common cause. Decode what's
			// left as a single truncated instruction and stop.
			color.Yellow("sevm: truncated opcode %s at pc %d/%d, wanted %d immediate bytes, have %d",
				b.String(), pc, len(code), size-1, len(code)-pc-1)
			ops = append(ops, readOp(b, code[pc+1:]))
			break
		}
		ops = append(ops, readOp(b, code[pc+1:pc+size]))
		pc += size
	}
	return ops
}

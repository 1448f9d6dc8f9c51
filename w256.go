package sevm

import (
	"github.com/holiman/uint256"
)

// W256 is an unsigned 256-bit integer with wrapping arithmetic. All the
// wrapping/truncating/signed semantics the opcode table depends on (ADD,
// SDIV, EXP, SIGNEXTEND, ...) come straight from holiman/uint256; this type
// only exists so the rest of the package reads in the spec's own
// vocabulary instead of uint256's.
type W256 = uint256.Int

// ZeroW256 is the zero value, used as the default for absent storage slots.
func ZeroW256() *W256 { return new(W256) }

// W256FromUint64 builds a W256 from a small constant, used by opcodes that
// push a fixed-width value (PC, MSIZE, GAS, CALLDATASIZE, ...).
func W256FromUint64(n uint64) *W256 { return new(W256).SetUint64(n) }

// byteAt returns the byte of x at position n counted from the most
// significant end, or 0 if n is out of range. This is the BYTE opcode's
// indexing convention (spec.md sec.4.3).
func byteAt(n uint64, x *W256) *W256 {
	if n >= 32 {
		return ZeroW256()
	}
	b := x.Bytes32()
	return W256FromUint64(uint64(b[n]))
}

// boolW256 encodes a boolean as the EVM's canonical 0/1 word.
func boolW256(b bool) *W256 {
	if b {
		return new(W256).SetOne()
	}
	return ZeroW256()
}

package sevm

// FrameState is the register set of one executing call frame: everything
// a single step reads or mutates without reaching into the frame stack or
// the world state (spec.md section 4.1).
type FrameState struct {
	// Contract is the address whose storage/balance this frame acts on
	// (the DELEGATECALL-sensitive "self"); CodeContract is the address the
	// running bytecode was fetched from. The two differ only under
	// DELEGATECALL.
	Contract     Addr
	CodeContract Addr
	Code         []byte
	// OpIxMap and CodeOps are the decoded form of Code, computed once when
	// the frame is entered rather than looked up from CodeContract's
	// account: a CREATE/CREATE2 init frame runs code that isn't installed
	// as any account's bytecode yet (the new account's own code is still
	// empty), so jump validation and op decoding must key off the frame's
	// own Code, not the code-owning contract's cached tables.
	OpIxMap []int
	CodeOps []Op

	Pc uint64

	Stack  Stack[W256]
	Memory Memory
	// MemorySize is the memory high-water mark in words, advanced only by
	// accessMemoryRange, never by the raw byte length of Memory.Data --
	// this is what MSIZE reports (spec.md section 4.1).
	MemorySize uint64

	Calldata  []byte
	Callvalue *W256
	Caller    Addr

	// Returndata is the last subcall's output, read by RETURNDATASIZE/
	// RETURNDATACOPY. Not named in spec.md's FrameState but required by
	// those two standard opcodes; it is local to the frame like everything
	// else a step reads, so it belongs here rather than on the VM.
	Returndata []byte
}

// decodeCode computes the op-index map and decoded operation sequence for
// a frame's running code. Used wherever FrameState.Code is set from bytes
// that don't already have a Contract caching these (namely CREATE/CREATE2
// init code); call sites running an installed account's code reuse that
// account's own cached opIxMap/codeOps instead of recomputing them.
func decodeCode(code []byte) ([]int, []Op) {
	return mkOpIxMap(code), mkCodeOps(code)
}

// accessMemoryRange grows MemorySize to cover [offset, offset+size) rounded
// up to a whole word, mirroring the real EVM's memory-expansion accounting.
// A zero-size range never touches memory, matching opcodes like LOG and
// CALL that accept a (offset, 0) pair to mean "no data" (spec.md section 4.1).
func (f *FrameState) accessMemoryRange(offset, size uint64) {
	if size == 0 {
		return
	}
	words := (offset + size + 31) / 32
	if words > f.MemorySize {
		f.MemorySize = words
	}
}

// FrameContext is what a Frame restores into its caller on exit: a
// CREATE/CREATE2 frame pushes the new contract's address (or 0 on
// failure), a CALL-family frame writes returndata into the caller's memory
// and pushes a success flag. CallContext and CreationContext are the two
// implementations (spec.md section 4.6).
type FrameContext interface {
	isFrameContext()
}

// CreationContext is the pending half of a CREATE/CREATE2: on normal
// completion the returned bytes become the new contract's code
// (performCreation); on revert/failure the new account is simply deleted,
// since nothing but its own (empty) existence needs undoing (spec.md section
// 4.6 — creation frames restore by deleting the new account only, not a
// full world snapshot).
type CreationContext struct {
	NewAddr  Addr
	Codehash *W256
}

func (CreationContext) isFrameContext() {}

// CallContext is the pending half of a CALL/DELEGATECALL/STATICCALL: on
// completion the returned bytes are copied into the caller's memory at
// OutOffset, truncated to the shorter of the returned data and OutSize; the
// rest of the [OutOffset, OutOffset+OutSize) region is left unchanged.
type CallContext struct {
	OutOffset uint64
	OutSize   uint64
	Reversion map[Addr]*Contract
}

func (CallContext) isFrameContext() {}

// Frame is one entry of the call stack: the context describing how to
// resume the caller, plus the caller's saved register set to restore as
// the live FrameState on return (spec.md section 4.1/section 4.6).
type Frame struct {
	Context FrameContext
	Saved   FrameState
}

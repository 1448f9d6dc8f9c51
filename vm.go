package sevm

import gethvm "github.com/ethereum/go-ethereum/core/vm"

// VMOpts configures a fresh run: the code to execute, the calldata and
// value it was invoked with, the three addresses a transaction carries
// (executing/code-owning address, caller, origin) and the block header
// fields visible to opcodes. There is no flags/env/config-file layer here
// (spec.md section 8.3) -- callers construct this directly, the way the teacher's
// own entrypoints build a Contract/EVM pair by hand.
type VMOpts struct {
	Code     []byte
	Calldata []byte
	Value    *W256
	Address  Addr
	Caller   Addr
	Origin   Addr

	Number     *W256
	Timestamp  *W256
	Coinbase   Addr
	Difficulty *W256
	GasLimit   *W256
}

// VMResult is the terminal outcome of a run, set only once the outermost
// frame unwinds (spec.md section 4.6/section 7).
type VMResult struct {
	Done       bool
	Returndata []byte
	Err        error
}

// VM is a whole execution: the live register set of the currently running
// frame, the stack of suspended caller frames beneath it, the world state,
// and the trace accumulated so far. Gas is deliberately absent -- GAS
// reads GasStub and nothing is ever charged (spec.md section 1).
type VM struct {
	Result *VMResult

	State  FrameState
	Frames []Frame

	Env   *Env
	Block Block

	Selfdestructs []Addr

	ContextTrace *ContextTrace
}

// NewVM builds a ready-to-step VM from opts -- the only entrypoint callers
// outside this package use to construct one (spec.md section 6).
func NewVM(opts VMOpts) *VM {
	return makeVm(opts)
}

// Logs flattens the context trace's log events into execution order,
// discarding the call/create tree structure (spec.md section 3's VM.logs).
func (m *VM) Logs() []Log {
	return m.ContextTrace.Logs()
}

// makeVm builds a VM with its single top-level frame already live: the
// code in opts is installed as the account at opts.Address, and execution
// starts at pc 0 with an empty frame stack. (spec.md section 4.6, section 6)
func makeVm(opts VMOpts) *VM {
	env := NewEnv(opts.Origin)
	c := NewContract(opts.Code)
	if opts.Value != nil {
		c.Balance = new(W256).Set(opts.Value)
	}
	env.Contracts[opts.Address] = c

	value := opts.Value
	if value == nil {
		value = ZeroW256()
	}

	return &VM{
		State: FrameState{
			Contract:     opts.Address,
			CodeContract: opts.Address,
			Code:         opts.Code,
			OpIxMap:      c.opIxMap,
			CodeOps:      c.codeOps,
			Calldata:     opts.Calldata,
			Callvalue:    value,
			Caller:       opts.Caller,
		},
		Env: env,
		Block: Block{
			Coinbase:   opts.Coinbase,
			Timestamp:  orZero(opts.Timestamp),
			Number:     orZero(opts.Number),
			Difficulty: orZero(opts.Difficulty),
			GasLimit:   orZero(opts.GasLimit),
		},
		ContextTrace: NewContextTrace(),
	}
}

func orZero(x *W256) *W256 {
	if x == nil {
		return ZeroW256()
	}
	return x
}

// currentContract is the account the live frame is executing against.
// Panics if it is missing -- that would mean a frame is running against an
// account that was deleted out from under it, an internal invariant
// violation rather than contract-level behavior.
func currentContract(m *VM) *Contract {
	c, ok := m.Env.Contracts[m.State.Contract]
	if !ok {
		panicInternal("current contract %s missing from env", m.State.Contract.Hex())
	}
	return c
}

// vmOpIx returns the op-index of the instruction at the current pc, or
// false if pc has run off the end of the code (STOP is implicit there).
// Reads the live frame's own OpIxMap rather than CodeContract's cached
// one: inside a CREATE/CREATE2 init frame the running code is the
// not-yet-installed init code, which CodeContract's account doesn't carry
// (its bytecode is still empty until performCreation runs).
func vmOpIx(m *VM) (int, bool) {
	pc := m.State.Pc
	if pc >= uint64(len(m.State.Code)) {
		return 0, false
	}
	return m.State.OpIxMap[pc], true
}

// vmOp returns the decoded instruction at the current pc.
func vmOp(m *VM) (Op, bool) {
	ix, ok := vmOpIx(m)
	if !ok {
		return Op{}, false
	}
	ops := m.State.CodeOps
	if ix >= len(ops) {
		return Op{}, false
	}
	return ops[ix], true
}

// opParams names the stack slots of the instructions whose arguments are
// most often inspected by a caller watching execution rather than driving
// it forward a plain step at a time (spec.md section 6). Each entry maps a
// parameter name to the value it would be popped as; none of this mutates
// the stack.
func opParams(m *VM) map[string]*W256 {
	op, ok := vmOp(m)
	if !ok {
		return nil
	}
	st := &m.State.Stack
	peek := func(n int) *W256 { return st.PeekI(n) }

	switch op.Code {
	case gethvm.CREATE:
		return map[string]*W256{"value": peek(0), "offset": peek(1), "size": peek(2)}
	case gethvm.CREATE2:
		return map[string]*W256{"value": peek(0), "offset": peek(1), "size": peek(2), "salt": peek(3)}
	case gethvm.CALL, gethvm.CALLCODE:
		return map[string]*W256{
			"gas": peek(0), "addr": peek(1), "value": peek(2),
			"inOffset": peek(3), "inSize": peek(4),
			"outOffset": peek(5), "outSize": peek(6),
		}
	case gethvm.DELEGATECALL, gethvm.STATICCALL:
		return map[string]*W256{
			"gas": peek(0), "addr": peek(1),
			"inOffset": peek(2), "inSize": peek(3),
			"outOffset": peek(4), "outSize": peek(5),
		}
	case gethvm.SSTORE:
		return map[string]*W256{"key": peek(0), "value": peek(1)}
	case gethvm.CODECOPY:
		return map[string]*W256{"destOffset": peek(0), "offset": peek(1), "size": peek(2)}
	case gethvm.SHA3:
		return map[string]*W256{"offset": peek(0), "size": peek(1)}
	case gethvm.CALLDATACOPY:
		return map[string]*W256{"destOffset": peek(0), "offset": peek(1), "size": peek(2)}
	case gethvm.EXTCODECOPY:
		return map[string]*W256{"addr": peek(0), "destOffset": peek(1), "offset": peek(2), "size": peek(3)}
	case gethvm.RETURN, gethvm.REVERT:
		return map[string]*W256{"offset": peek(0), "size": peek(1)}
	case gethvm.JUMPI:
		return map[string]*W256{"dest": peek(0), "cond": peek(1)}
	}
	return nil
}

package sevm

// --- creations (spec.md section 4.6) ---

func opCreate(m *VM) error {
	return doCreate(m, nil)
}

// opCreate2 mirrors CREATE but derives its address from a caller-chosen
// salt rather than the sender's nonce. spec.md section 4.6 only writes out
// CREATE's address formula; CREATE2's is the standard
// keccak(0xff ++ sender ++ salt ++ keccak(initcode))[12:], the natural
// generalization and the one the rest of the retrieval pack (and real
// chains) use.
func opCreate2(m *VM) error {
	s := &m.State.Stack
	salt := *s.PeekI(3)
	return doCreate(m, &salt)
}

func doCreate(m *VM, salt *W256) error {
	s := &m.State.Stack
	value, offset, size := s.Pop(), s.Pop(), s.Pop()

	self := currentContract(m)
	if value.Gt(self.Balance) {
		return ErrBalanceTooLow
	}

	off, sz := offset.Uint64(), size.Uint64()
	initCode := m.State.Memory.Slice(off, sz)
	m.State.accessMemoryRange(off, sz)

	var newAddr Addr
	if salt != nil {
		newAddr = create2Address(m.State.Contract, *salt, initCode)
	} else {
		newAddr = createAddress(m.State.Contract, self.Nonce)
	}

	self.Nonce++
	self.Balance.Sub(self.Balance, &value)

	newC := NewContract(nil)
	newC.Balance = new(W256).Set(&value)
	m.Env.Contracts[newAddr] = newC

	saved := m.State
	saved.Stack = m.State.Stack.Clone()

	pushFrame(m, CreationContext{NewAddr: newAddr, Codehash: keccak256(initCode)}, saved)

	opIxMap, codeOps := decodeCode(initCode)
	m.State = FrameState{
		Contract:     newAddr,
		CodeContract: newAddr,
		Code:         initCode,
		OpIxMap:      opIxMap,
		CodeOps:      codeOps,
		Callvalue:    new(W256).Set(&value),
		Caller:       saved.Contract,
	}
	return nil
}

// --- calls (spec.md section 4.6) ---

func opCall(m *VM) error {
	s := &m.State.Stack
	_ /* gas */, addr, value, inOff, inSize, outOff, outSize :=
		s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop()
	return doCall(m, Addr(addr.Bytes20()), &value, inOff.Uint64(), inSize.Uint64(), outOff.Uint64(), outSize.Uint64(), m.State.Contract)
}

// opCallCode is decoded but its execution is a fatal internal error rather
// than a contract-level failure (spec.md section 6/section 7, decision (b) of
// spec.md section 11).
func opCallCode(m *VM) error {
	panicInternal("CALLCODE is not supported")
	return nil
}

// opDelegateCall runs `to`'s code against the current frame's own
// contract/callvalue/caller — only codeContract and code come from `to`,
// and no value moves (spec.md section 4.6).
func opDelegateCall(m *VM) error {
	s := &m.State.Stack
	_ /* gas */, addr, inOff, inSize, outOff, outSize :=
		s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop()

	toAddr := Addr(addr.Bytes20())
	target, ok := m.Env.Contracts[toAddr]
	if !ok {
		return &NoSuchContractError{Addr: toAddr}
	}

	calldata := m.State.Memory.Slice(inOff.Uint64(), inSize.Uint64())
	m.State.accessMemoryRange(inOff.Uint64(), inSize.Uint64())

	reversion := m.Env.snapshot()

	saved := m.State
	saved.Stack = m.State.Stack.Clone()

	pushFrame(m, CallContext{OutOffset: outOff.Uint64(), OutSize: outSize.Uint64(), Reversion: reversion}, saved)

	m.State = FrameState{
		Contract:     saved.Contract,
		CodeContract: toAddr,
		Code:         target.Bytecode,
		OpIxMap:      target.opIxMap,
		CodeOps:      target.codeOps,
		Calldata:     calldata,
		Callvalue:    saved.Callvalue,
		Caller:       saved.Caller,
	}
	return nil
}

// opStaticCall is CALL with a value pinned to 0 (spec.md is silent on
// STATICCALL specifically; the teacher's do_opcall takes the same
// shortcut of reusing the CALL path with value=0).
func opStaticCall(m *VM) error {
	s := &m.State.Stack
	_ /* gas */, addr, inOff, inSize, outOff, outSize :=
		s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop(), s.Pop()
	return doCall(m, Addr(addr.Bytes20()), ZeroW256(), inOff.Uint64(), inSize.Uint64(), outOff.Uint64(), outSize.Uint64(), m.State.Contract)
}

func doCall(m *VM, toAddr Addr, value *W256, inOff, inSize, outOff, outSize uint64, caller Addr) error {
	self := currentContract(m)
	if value.Gt(self.Balance) {
		return ErrBalanceTooLow
	}

	target, ok := m.Env.Contracts[toAddr]
	if !ok {
		return &NoSuchContractError{Addr: toAddr}
	}

	calldata := m.State.Memory.Slice(inOff, inSize)
	m.State.accessMemoryRange(inOff, inSize)

	reversion := m.Env.snapshot()

	if !value.IsZero() {
		self.Balance.Sub(self.Balance, value)
		target.Balance.Add(target.Balance, value)
	}

	saved := m.State
	saved.Stack = m.State.Stack.Clone()

	pushFrame(m, CallContext{OutOffset: outOff, OutSize: outSize, Reversion: reversion}, saved)

	m.State = FrameState{
		Contract:     toAddr,
		CodeContract: toAddr,
		Code:         target.Bytecode,
		OpIxMap:      target.opIxMap,
		CodeOps:      target.codeOps,
		Calldata:     calldata,
		Callvalue:    new(W256).Set(value),
		Caller:       caller,
	}
	return nil
}

// --- return paths (spec.md section 4.6) ---

func opReturn(m *VM) error {
	s := &m.State.Stack
	offset, size := s.Pop(), s.Pop()
	off, sz := offset.Uint64(), size.Uint64()
	data := m.State.Memory.Slice(off, sz)
	m.State.accessMemoryRange(off, sz)

	frame, ok := popFrame(m)
	if !ok {
		m.Result = &VMResult{Done: true, Returndata: data}
		return nil
	}

	switch ctx := frame.Context.(type) {
	case CreationContext:
		performCreation(m.Env, ctx.NewAddr, data)
		m.State = frame.Saved
		m.State.Returndata = data
		m.State.Stack.Push(*addrToW256(ctx.NewAddr))
	case CallContext:
		m.State = frame.Saved
		m.State.Returndata = data
		n := sz
		if ctx.OutSize < n {
			n = ctx.OutSize
		}
		if n > 0 {
			m.State.Memory.WriteRange(data, n, 0, ctx.OutOffset)
			m.State.accessMemoryRange(ctx.OutOffset, n)
		}
		m.State.Stack.Push(*boolW256(true))
	}
	m.ContextTrace.Ascend()
	return nil
}

func opRevert(m *VM) error {
	s := &m.State.Stack
	offset, size := s.Pop(), s.Pop()
	data := m.State.Memory.Slice(offset.Uint64(), size.Uint64())
	m.State.accessMemoryRange(offset.Uint64(), size.Uint64())
	return &RevertError{Data: data}
}

// opSuicide implements SELFDESTRUCT: transfer the whole balance, record the
// address, then surface a failure that unwinds one frame exactly like
// REVERT (spec.md section 4.6, decision (c) of section 11 — a known deviation
// from real EVM semantics, kept because spec.md asks implementers not to
// guess past what's written).
func opSuicide(m *VM) error {
	beneficiary := m.State.Stack.Pop()
	self := currentContract(m)
	bAddr := Addr(beneficiary.Bytes20())
	target := touchAccount(m.Env, bAddr)
	target.Balance.Add(target.Balance, self.Balance)
	self.Balance.Clear()
	m.Selfdestructs = append(m.Selfdestructs, m.State.Contract)
	return ErrSelfDestruction
}

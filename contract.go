package sevm

// Contract is one account's on-chain state: code plus the decoded form of
// that code, storage, balance and nonce. Storage keys with a zero value
// are never present in the map -- SSTORE(k, 0) deletes k, and an absent
// key reads as zero (spec.md section 3).
type Contract struct {
	Bytecode []byte
	Storage  map[W256]W256
	Balance  *W256
	Nonce    uint64
	Codehash W256
	// opIxMap and codeOps are precomputed once per code change (construction
	// or performCreation) rather than on every step, since pc-to-op lookups
	// happen on every single instruction.
	opIxMap []int
	codeOps []Op
}

// NewContract builds an account with the given code already installed.
// Storage and balance start empty/zero.
func NewContract(code []byte) *Contract {
	c := &Contract{
		Storage: map[W256]W256{},
		Balance: ZeroW256(),
	}
	c.setCode(code)
	return c
}

// CodeSize is the invariant codesize == |bytecode|.
func (c *Contract) CodeSize() int {
	return len(c.Bytecode)
}

// setCode installs code, recomputing codehash/opIxMap/codeOps. An empty
// account (e.g. after SELFDESTRUCT or a never-deployed address touched by
// BALANCE) hashes to zero rather than keccak(""), per spec.md section 3.
func (c *Contract) setCode(code []byte) {
	c.Bytecode = code
	if len(code) == 0 {
		c.Codehash = *ZeroW256()
	} else {
		c.Codehash = *keccak256(code)
	}
	c.opIxMap = mkOpIxMap(code)
	c.codeOps = mkCodeOps(code)
}

// SLoad reads storage[k], defaulting to zero for an absent key.
func (c *Contract) SLoad(k W256) W256 {
	if v, ok := c.Storage[k]; ok {
		return v
	}
	return *ZeroW256()
}

// SStore writes storage[k] = v, deleting k when v is zero so the
// zero-absent invariant holds.
func (c *Contract) SStore(k, v W256) {
	if v.IsZero() {
		delete(c.Storage, k)
		return
	}
	c.Storage[k] = v
}

// clone makes an independent copy, used when snapshotting env.contracts for
// a CallContext's reversion (spec.md section 4.6/section 5).
func (c *Contract) clone() *Contract {
	cp := &Contract{
		Bytecode: c.Bytecode, // code itself is immutable once installed
		Storage:  make(map[W256]W256, len(c.Storage)),
		Balance:  new(W256).Set(c.Balance),
		Nonce:    c.Nonce,
		Codehash: c.Codehash,
		opIxMap:  c.opIxMap, // shared: derived purely from Bytecode
		codeOps:  c.codeOps,
	}
	for k, v := range c.Storage {
		cp.Storage[k] = v
	}
	return cp
}

// performCreation installs the deployed code returned by an init-code
// RETURN. Empty code means the creation produced no contract (e.g. an
// empty RETURN), in which case the account is removed entirely; otherwise
// the account's code is replaced while its storage and balance (already
// touched by the CREATE value transfer) are preserved. (spec.md section 4.6)
func performCreation(env *Env, addr Addr, code []byte) {
	if len(code) == 0 {
		delete(env.Contracts, addr)
		return
	}
	c := env.Contracts[addr]
	c.setCode(code)
}

// touchAccount returns the contract at a, creating an empty one (zero
// code/balance/nonce/storage) if none exists yet. Used by BALANCE,
// EXTCODESIZE, EXTCODECOPY and a SELFDESTRUCT beneficiary
// that has never been seen (spec.md section 4.6).
func touchAccount(env *Env, a Addr) *Contract {
	if c, ok := env.Contracts[a]; ok {
		return c
	}
	c := NewContract(nil)
	env.Contracts[a] = c
	return c
}

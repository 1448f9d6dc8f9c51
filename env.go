package sevm

// Env is the world as of the current step: every known account plus a
// preimage table that lets SHA3 results be traced back to the bytes that
// produced them (useful for symbolic/debug tooling reading the trace after
// the fact). Origin is the externally-owned account that signed the
// top-level transaction, constant for the whole run (spec.md section 3).
type Env struct {
	Contracts map[Addr]*Contract
	Sha3Crack map[W256][]byte
	Origin    Addr
}

func NewEnv(origin Addr) *Env {
	return &Env{
		Contracts: map[Addr]*Contract{},
		Sha3Crack: map[W256][]byte{},
		Origin:    origin,
	}
}

// snapshot deep-copies every account, used as a CallContext's reversion
// point. O(n) in total account count; spec.md section 5 accepts this in
// exchange for the simplicity of "restore = overwrite the map".
func (e *Env) snapshot() map[Addr]*Contract {
	cp := make(map[Addr]*Contract, len(e.Contracts))
	for a, c := range e.Contracts {
		cp[a] = c.clone()
	}
	return cp
}

// restore replaces the live account set with a previously taken snapshot,
// undoing every storage write, balance transfer, nonce bump and code
// install made since it was taken.
func (e *Env) restore(snap map[Addr]*Contract) {
	e.Contracts = snap
}

// Block carries the header fields exposed by COINBASE/TIMESTAMP/NUMBER/
// DIFFICULTY/GASLIMIT; constant for the whole run (spec.md section 3).
type Block struct {
	Coinbase   Addr
	Timestamp  *W256
	Number     *W256
	Difficulty *W256
	GasLimit   *W256
}

package sevm

// GasStub is what GAS pushes. Gas metering is out of scope (spec.md sec.1):
// nothing is charged for any opcode, so there is no meaningful "gas
// remaining" to report, only a placeholder large enough that gas-oblivious
// contract code (e.g. a bare CALL forwarding "all remaining gas") behaves
// as if gas were never a constraint.
const GasStub uint64 = 0xffffffffffffffff

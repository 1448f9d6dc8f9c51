package sevm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors a step can surface (spec.md sec.6). All but ErrInternal are
// recoverable: exec1 unwinds one frame per spec.md sec.7 rather than
// propagating these to the caller of Step. ErrInternal is only set as the
// terminal result by Step after recovering an internalError panic.
var (
	ErrBalanceTooLow      = errors.New("balance too low")
	ErrSelfDestruction    = errors.New("self destruction")
	ErrStackUnderrun      = errors.New("stack underrun")
	ErrBadJumpDestination = errors.New("bad jump destination")
	ErrInternal           = errors.New("internal error")
)

// UnrecognizedOpcodeError carries the offending byte.
type UnrecognizedOpcodeError struct {
	Byte byte
}

func (e *UnrecognizedOpcodeError) Error() string {
	return fmt.Sprintf("unrecognized opcode: 0x%02x", e.Byte)
}

// NoSuchContractError carries the address that had no account.
type NoSuchContractError struct {
	Addr Addr
}

func (e *NoSuchContractError) Error() string {
	return fmt.Sprintf("no such contract: %s", e.Addr.Hex())
}

// RevertError is REVERT's error, extended per spec.md sec.9(e) to carry the
// reverted memory region rather than discarding it.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string {
	return "execution reverted"
}

// internalError marks an invariant violation -- a bug, not contract
// behavior (spec.md sec.7). It is only ever raised via panic and is recovered
// by Step, never returned as an ordinary error from an opcode handler.
type internalError struct {
	msg string
}

func (e *internalError) Error() string { return e.msg }

func panicInternal(format string, args ...interface{}) {
	panic(&internalError{msg: fmt.Sprintf(format, args...)})
}

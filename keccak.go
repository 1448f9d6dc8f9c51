package sevm

import "github.com/ethereum/go-ethereum/crypto"

// keccak256 hashes data with Keccak-256 and returns it as a W256, matching
// how codehash and the SHA3 opcode's result are typed throughout this
// package. Delegates to go-ethereum/crypto (itself a thin wrapper over
// golang.org/x/crypto/sha3) so there is exactly one Keccak entrypoint in
// the module (spec.md sec.1 treats Keccak-256 as an external collaborator,
// not something to reimplement).
func keccak256(data []byte) *W256 {
	h := crypto.Keccak256Hash(data)
	return new(W256).SetBytes(h.Bytes())
}

// createAddress derives the address of a contract created by sender at
// the given nonce: keccak(rlp([sender, nonce]))[12:], spec.md sec.4.6.
func createAddress(sender Addr, nonce uint64) Addr {
	return crypto.CreateAddress(sender, nonce)
}

// create2Address derives a CREATE2 address:
// keccak(0xff ++ sender ++ salt ++ keccak(initCode))[12:].
func create2Address(sender Addr, salt W256, initCode []byte) Addr {
	saltBytes := salt.Bytes32()
	return crypto.CreateAddress2(sender, saltBytes, crypto.Keccak256(initCode))
}

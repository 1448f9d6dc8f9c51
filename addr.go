package sevm

import "github.com/ethereum/go-ethereum/common"

// Addr is a 160-bit account identifier.
type Addr = common.Address

// ZeroAddr is the all-zero address.
var ZeroAddr Addr

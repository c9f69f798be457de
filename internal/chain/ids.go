package chain

import (
	"github.com/zeebo/xxh3"
)

// ContractID derives the uint64 identifier the tracker contract uses from
// an aggregate's UUID string. The derivation is deterministic, so both
// sides agree on ids without a mapping table.
func ContractID(uuid string) uint64 {
	return xxh3.HashString(uuid)
}

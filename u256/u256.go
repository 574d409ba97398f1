package u256

import (
	"github.com/holiman/uint256"
)

// ToLittleEndian serializes v as 32 little-endian bytes.
func ToLittleEndian(v *uint256.Int) [32]byte {
	be := v.Bytes32()
	var out [32]byte
	for i := range be {
		out[i] = be[31-i]
	}
	return out
}

// FromLittleEndian is the inverse of ToLittleEndian.
func FromLittleEndian(b [32]byte) *uint256.Int {
	var be [32]byte
	for i := range b {
		be[i] = b[31-i]
	}
	return new(uint256.Int).SetBytes32(be[:])
}

package model

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the byte length of roots and nullifier hashes. Both are BN254
// scalar field elements in big-endian form.
const HashSize = 32

type Hash [HashSize]byte

// Root is the Merkle accumulator commitment to the enrolled-identity set.
type Root = Hash

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode hash: %w", err)
	}
	if len(raw) != HashSize {
		return h, fmt.Errorf("decode hash: expected %d bytes, got %d", HashSize, len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

package cache

import (
	"crypto/sha256"
	"encoding/binary"

	"personhood-verifier/src/model"
)

// Fingerprint is the deterministic identity of a request's byte content:
// action id, signal, nullifier hash and proof blob. The accepted root is
// deliberately excluded: a resubmission that cites a fresher root but is
// otherwise identical still hits the cache. Length prefixes keep field
// boundaries unambiguous.
type Fingerprint [32]byte

func FingerprintOf(req *model.VerificationRequest) Fingerprint {
	h := sha256.New()

	var length [8]byte
	writeField := func(data []byte) {
		binary.BigEndian.PutUint64(length[:], uint64(len(data)))
		h.Write(length[:])
		h.Write(data)
	}

	writeField([]byte(req.ActionId))
	writeField(req.Signal)
	writeField(req.NullifierHash[:])
	writeField(req.Proof)

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

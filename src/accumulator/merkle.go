package accumulator

import (
	"errors"
	"fmt"
	"sync"

	"personhood-verifier/src/model"
	"personhood-verifier/src/zkp"
)

const maxLeaves = 1 << zkp.TreeDepth

var ErrTreeFull = errors.New("accumulator is full")

// MerkleAccumulator is a fixed-depth MiMC Merkle tree over enrolled identity
// commitments. The verification core never writes to the production
// accumulator; this implementation backs development deployments and tests,
// and doubles as the default RootSource.
type MerkleAccumulator struct {
	mu     sync.RWMutex
	leaves []model.Hash
	zeros  [zkp.TreeDepth + 1]model.Hash

	// Every insert produces a new root; recent ones are kept so in-flight
	// proofs against a slightly older tree still verify.
	rootHistory []model.Root
}

func NewMerkleAccumulator() (*MerkleAccumulator, error) {
	acc := &MerkleAccumulator{}

	// zeros[i] is the hash of an empty subtree of height i.
	for i := 1; i <= zkp.TreeDepth; i++ {
		h, err := zkp.HashPair(acc.zeros[i-1], acc.zeros[i-1])
		if err != nil {
			return nil, err
		}
		acc.zeros[i] = h
	}

	root, err := acc.computeRoot()
	if err != nil {
		return nil, err
	}
	acc.rootHistory = []model.Root{root}

	return acc, nil
}

// Enroll inserts an identity commitment and returns its leaf index.
func (a *MerkleAccumulator) Enroll(commitment model.Hash) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.leaves) >= maxLeaves {
		return 0, ErrTreeFull
	}

	a.leaves = append(a.leaves, commitment)
	index := len(a.leaves) - 1

	root, err := a.computeRoot()
	if err != nil {
		a.leaves = a.leaves[:index]
		return 0, err
	}
	a.rootHistory = append(a.rootHistory, root)

	return index, nil
}

func (a *MerkleAccumulator) Root() (model.Root, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rootHistory[len(a.rootHistory)-1], nil
}

// CurrentRoots implements RootSource: the most recent roots, newest first.
func (a *MerkleAccumulator) CurrentRoots(window int) ([]model.Root, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if window < 1 {
		window = 1
	}
	if window > len(a.rootHistory) {
		window = len(a.rootHistory)
	}

	roots := make([]model.Root, 0, window)
	for i := 0; i < window; i++ {
		roots = append(roots, a.rootHistory[len(a.rootHistory)-1-i])
	}
	return roots, nil
}

// InclusionProof returns the sibling path and direction bits for a leaf.
func (a *MerkleAccumulator) InclusionProof(index int) (zkp.MembershipWitness, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var mw zkp.MembershipWitness
	if index < 0 || index >= len(a.leaves) {
		return mw, fmt.Errorf("leaf index %d out of range", index)
	}

	nodeIndex := index
	for level := 0; level < zkp.TreeDepth; level++ {
		siblingIndex := nodeIndex ^ 1

		sibling, err := a.node(level, siblingIndex)
		if err != nil {
			return mw, err
		}

		mw.PathElements[level] = sibling
		mw.PathIndices[level] = nodeIndex & 1
		nodeIndex >>= 1
	}
	return mw, nil
}

// node computes the hash at (level, index), using precomputed empty-subtree
// hashes for the unoccupied range. Callers hold at least the read lock.
func (a *MerkleAccumulator) node(level, index int) (model.Hash, error) {
	// occupied is the number of non-empty nodes on this level.
	occupied := len(a.leaves)
	for l := 0; l < level; l++ {
		occupied = (occupied + 1) / 2
	}
	if index >= occupied {
		return a.zeros[level], nil
	}
	if level == 0 {
		return a.leaves[index], nil
	}

	left, err := a.node(level-1, 2*index)
	if err != nil {
		return model.Hash{}, err
	}
	right, err := a.node(level-1, 2*index+1)
	if err != nil {
		return model.Hash{}, err
	}
	return zkp.HashPair(left, right)
}

func (a *MerkleAccumulator) computeRoot() (model.Root, error) {
	return a.node(zkp.TreeDepth, 0)
}

package accumulator

import "personhood-verifier/src/model"

// RootSource is the read-only handle to the enrollment accumulator. The core
// polls it to refresh the accepted-root window; it never writes through it.
type RootSource interface {
	CurrentRoots(window int) ([]model.Root, error)
}

// StaticRootSource serves a fixed root list. Useful when roots arrive out of
// band (e.g. pinned in config) and in tests.
type StaticRootSource struct {
	Roots []model.Root
}

func (s *StaticRootSource) CurrentRoots(window int) ([]model.Root, error) {
	if window > len(s.Roots) {
		window = len(s.Roots)
	}
	return s.Roots[:window], nil
}

package accumulator

import (
	"sync"

	"personhood-verifier/src/model"
)

// RootWindow is the bounded history of accumulator roots the pipeline accepts.
// A root outside the window is stale. The window is best-effort shared state:
// staleness costs a retry with a fresh proof, never correctness.
type RootWindow struct {
	mu    sync.RWMutex
	size  int
	roots []model.Root
}

func NewRootWindow(size int) *RootWindow {
	if size < 1 {
		size = 1
	}
	return &RootWindow{size: size}
}

func (w *RootWindow) Size() int {
	return w.size
}

func (w *RootWindow) Contains(root model.Root) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, r := range w.roots {
		if r == root {
			return true
		}
	}
	return false
}

// Accept pushes a root to the front of the window, evicting the oldest when
// over capacity. No-op if the root is already present.
func (w *RootWindow) Accept(root model.Root) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range w.roots {
		if r == root {
			return
		}
	}

	w.roots = append([]model.Root{root}, w.roots...)
	if len(w.roots) > w.size {
		w.roots = w.roots[:w.size]
	}
}

// Refresh replaces the window contents with the source's current roots.
func (w *RootWindow) Refresh(source RootSource) error {
	roots, err := source.CurrentRoots(w.size)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.roots = w.roots[:0]
	w.roots = append(w.roots, roots...)
	return nil
}

package session

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyGenerating is returned when an export is requested while one is in flight.
var ErrAlreadyGenerating = errors.New("an export is already being generated")

// ExportGuard is the isGenerating flag of one session.
type ExportGuard struct {
	generating atomic.Bool
}

// Begin marks an export as in flight. The returned release func must be
// called exactly once, whatever the outcome of the export.
func (g *ExportGuard) Begin() (release func(), err error) {
	if !g.generating.CompareAndSwap(false, true) {
		return nil, ErrAlreadyGenerating
	}
	return func() { g.generating.Store(false) }, nil
}

// Generating reports whether an export is in flight.
func (g *ExportGuard) Generating() bool {
	return g.generating.Load()
}

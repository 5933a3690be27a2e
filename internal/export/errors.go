// Package export turns the rendered preview into a downloadable multi-page PDF.
package export

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when an export is attempted before both the
// rasterizer and the document library are available.
var ErrNotReady = errors.New("export pipeline is not ready")

// Stage names a step of the export pipeline.
type Stage string

const (
	StageRender   Stage = "render"
	StageCapture  Stage = "capture"
	StageDocument Stage = "document"
	StagePaginate Stage = "paginate"
	StageSave     Stage = "save"
)

// StageError reports which pipeline step failed. The export is abandoned and
// no file is produced.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

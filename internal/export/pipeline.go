package export

import (
	"bytes"
	"context"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/rs/zerolog"
)

// Result is a finished export held in memory.
type Result struct {
	Filename string
	Pages    int
	Bytes    []byte
}

// Pipeline renders, captures and paginates a résumé into a PDF.
type Pipeline struct {
	gate       *Gate
	rasterizer Rasterizer
	factory    DocumentFactory
	capture    CaptureOptions
	logger     zerolog.Logger
}

// NewPipeline wires a pipeline. gate must watch rasterizer and factory.
func NewPipeline(gate *Gate, rasterizer Rasterizer, factory DocumentFactory, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		gate:       gate,
		rasterizer: rasterizer,
		factory:    factory,
		capture:    DefaultCaptureOptions(),
		logger:     logger.With().Str("component", "export").Logger(),
	}
}

// Ready reports whether exports can run.
func (p *Pipeline) Ready() bool {
	return p.gate.Ready()
}

// Export produces the PDF for data. Any failure abandons the whole export;
// nothing partial is returned.
func (p *Pipeline) Export(ctx context.Context, data types.ResumeData) (*Result, error) {
	if !p.gate.Ready() {
		return nil, ErrNotReady
	}

	html, err := rendering.RenderStandalone(rendering.Project(data))
	if err != nil {
		return nil, p.fail(ctx, StageRender, err)
	}

	img, err := p.rasterizer.Capture(ctx, html, p.capture)
	if err != nil {
		return nil, p.fail(ctx, StageCapture, err)
	}

	doc, err := p.factory.New()
	if err != nil {
		return nil, p.fail(ctx, StageDocument, err)
	}

	pages, err := Paginate(doc, img)
	if err != nil {
		return nil, p.fail(ctx, StagePaginate, err)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, p.fail(ctx, StageSave, err)
	}

	result := &Result{
		Filename: Filename(data.PersonalInfo.Name),
		Pages:    pages,
		Bytes:    buf.Bytes(),
	}
	p.log(ctx).Info().
		Str("filename", result.Filename).
		Int("pages", result.Pages).
		Int("bytes", len(result.Bytes)).
		Msg("export complete")
	return result, nil
}

// log prefers a logger carried by ctx, so callers can attach request fields
// such as the session.
func (p *Pipeline) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &p.logger
}

func (p *Pipeline) fail(ctx context.Context, stage Stage, err error) error {
	p.log(ctx).Error().Err(err).Str("stage", string(stage)).Msg("export failed")
	return &StageError{Stage: stage, Cause: err}
}

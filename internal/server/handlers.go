package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rewriting"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// ResumeResponse is returned by every operation that changes the résumé.
type ResumeResponse struct {
	Resume  types.ResumeData `json:"resume"`
	Preview string           `json:"preview"`
	AddedID int64            `json:"addedId,omitempty"`
}

// StatusResponse represents the response for /api/status
type StatusResponse struct {
	ExportReady  bool                        `json:"exportReady"`
	IsGenerating bool                        `json:"isGenerating"`
	AIAvailable  bool                        `json:"aiAvailable"`
	AIInFlight   bool                        `json:"aiInFlight"`
	Rewrites     map[string]rewriting.Status `json:"rewrites"`
}

// RewriteResponse represents the response for /api/rewrite
type RewriteResponse struct {
	ResumeResponse
	Target string           `json:"target"`
	Status rewriting.Status `json:"status"`
}

// decodeJSON decodes a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if !isJSON(r) {
		return &ErrValidation{Field: "Content-Type", Message: "expected application/json"}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// respondResume renders the preview of data and writes a ResumeResponse.
func (s *Server) respondResume(w http.ResponseWriter, r *http.Request, data types.ResumeData, addedID int64) {
	preview, err := rendering.RenderFragment(rendering.Project(data))
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: data, Preview: preview, AddedID: addedID})
}

// handleGetResume returns the current snapshot
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleReplaceResume imports a whole résumé document
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.failResponse(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	data, err := schemas.ParseResume(body)
	if err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			s.jsonResponse(w, http.StatusBadRequest, map[string]any{
				"error":   codeValidation,
				"message": "El documento no es un CV válido.",
				"details": schemaErr.Errors,
			})
			return
		}
		s.failResponse(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	s.respondResume(w, r, sess.Replace(data), 0)
}

// handleEdit applies one field edit
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var edit editing.Edit
	if err := decodeJSON(w, r, &edit); err != nil {
		s.failResponse(w, r, err)
		return
	}

	data, res, err := sess.Apply(edit)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.respondResume(w, r, data, res.AddedID)
}

// handlePreview returns the preview HTML fragment
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	preview, err := rendering.RenderFragment(rendering.Project(sess.Snapshot()))
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, preview)
}

// handlePreviewText returns the text an ATS would extract from the preview
func (s *Server) handlePreviewText(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	preview, err := rendering.RenderFragment(rendering.Project(sess.Snapshot()))
	if err == nil {
		preview, err = rendering.PlainText(preview)
	}
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, preview)
}

// handleStylesheet serves the preview CSS shared with the exported document
func (s *Server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, rendering.Stylesheet())
}

// handleStatus reports export readiness and AI activity
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		ExportReady:  s.exports.Ready(),
		IsGenerating: sess.Export().Generating(),
		AIAvailable:  s.rewrites.Available(),
		AIInFlight:   sess.Rewrites().InFlight(),
		Rewrites:     sess.Rewrites().Active(),
	})
}

// handleChecks reports ATS readability problems in the current résumé
func (s *Server) handleChecks(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.jsonResponse(w, http.StatusOK, validation.Validate(sess.Snapshot(), validation.Options{}))
}

// handleRewrite asks the text-generation service to rewrite one field
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !s.rewrites.Available() {
		s.failResponse(w, r, rewriting.ErrUnavailable)
		return
	}

	var target rewriting.Target
	if err := decodeJSON(w, r, &target); err != nil {
		s.failResponse(w, r, err)
		return
	}

	data, err := s.rewrites.Run(r.Context(), sess, target)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}

	preview, err := rendering.RenderFragment(rendering.Project(data))
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, RewriteResponse{
		ResumeResponse: ResumeResponse{Resume: data, Preview: preview},
		Target:         target.Key(),
		Status:         sess.Rewrites().Status(target.Key()),
	})
}

// handleExport produces the PDF download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !s.exports.Ready() {
		s.failResponse(w, r, export.ErrNotReady)
		return
	}

	release, err := sess.Export().Begin()
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	defer release()

	logger := s.logger.With().Str("session", sess.ID.String()).Logger()
	result, err := s.exports.Export(logger.WithContext(r.Context()), sess.Snapshot())
	if err != nil {
		s.failResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Bytes)))
	w.Header().Set("X-Export-Pages", strconv.Itoa(result.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Bytes)
}

// indexData is the editor page model.
type indexData struct {
	AIAvailable   bool
	ErrorWindowMs int64
	Preview       template.HTML
	Tips          map[string]string
}

// atsTips are shown next to the fields where ATS parsers are most sensitive.
var atsTips = map[string]string{
	"summary":    "Escribe 2-3 frases que resuman tu perfil y objetivo. Usa palabras clave de la oferta de empleo a la que aplicas.",
	"experience": "Cuantifica tus logros (ej: 'aumenté las ventas un 15%'). Usa viñetas o frases cortas.",
	"skills":     "Incluye tanto habilidades técnicas (Software, Idiomas) como blandas (Comunicación, Liderazgo).",
}

// handleIndex serves the editor page with the current preview inlined
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	preview, err := rendering.RenderFragment(rendering.Project(sess.Snapshot()))
	if err != nil {
		s.failResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.index.ExecuteTemplate(w, "index", indexData{
		AIAvailable:   s.rewrites.Available(),
		ErrorWindowMs: s.failureWindow.Milliseconds(),
		Preview:       template.HTML(preview), //nolint:gosec // produced by html/template
		Tips:          atsTips,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render editor page")
	}
}

package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/tenji/pkg/buildinfo"
	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/pipeline"
)

// maxBodyBytes leaves room for the JSON envelope around the largest input.
const maxBodyBytes = errors.MaxInputLength + 4096

type convertRequest struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
	Raised string `json:"raised,omitempty"`
	Flat   string `json:"flat,omitempty"`
}

type convertResponse struct {
	Output string `json:"output"`
	Format string `json:"format"`
	Tokens int    `json:"tokens"`
	Cells  int    `json:"cells"`
	Cached bool   `json:"cached"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Build:  buildinfo.Get(),
	})
}

func (s *Server) handleConvertJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req convertRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "malformed JSON: "+err.Error())
		return
	}

	res, err := s.convert(r.Context(), pipeline.Options{
		Text:   req.Text,
		Format: req.Format,
		Raised: req.Raised,
		Flat:   req.Flat,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Output: string(res.Output),
		Format: res.Format,
		Tokens: res.Tokens,
		Cells:  res.Cells,
		Cached: res.Cached,
	})
}

func (s *Server) handleConvertText(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.convert(r.Context(), pipeline.Options{
		Text:   q.Get("text"),
		Format: q.Get("format"),
		Raised: q.Get("raised"),
		Flat:   q.Get("flat"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if res.Format == pipeline.FormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Output)
	w.Write([]byte("\n"))
}

func (s *Server) convert(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	opts.FromConfig(s.defaults)
	return s.runner.Execute(ctx, opts)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("conversion failed", "err", err, "id", RequestID(r.Context()))
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

// statusFor maps a pipeline error to an HTTP status. Grammar failures are
// well-formed requests the encoder cannot process, hence 422.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidToken:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGlyphs:
		return http.StatusBadRequest
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: strings.TrimSpace(message)})
}

package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/tablenorm-go/internal/calc"
	"github.com/ukaji3/tablenorm-go/internal/errors"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm"
)

// uploadField is the multipart field holding the uploaded file.
const uploadField = "file"

// multipartMemory is how much of a multipart body is kept in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload normalizes an uploaded spreadsheet or delimited text file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.writeError(w, r, errors.PayloadTooLarge(s.maxUploadBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			s.writeError(w, r, errors.PayloadTooLarge(s.maxUploadBytes))
			return
		}
		s.writeError(w, r, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.writeError(w, r, errors.InvalidInput("No file uploaded"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, errors.Wrapf(err, "failed to read uploaded file %q", header.Filename))
		return
	}

	table, err := tablenorm.Extract(content, header.Filename, s.extractOptions)
	if err != nil {
		var unparseable *tablenorm.UnparseableFileError
		if stderrors.As(err, &unparseable) {
			err = errors.UnparseableFile(unparseable.Cause())
		}
		s.writeError(w, r, err)
		return
	}

	s.log.Debug("file normalized",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("filename", header.Filename),
		slog.String("type", string(table.Format)),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)),
	)
	writeJSON(w, http.StatusOK, table)
}

// handleCalculate applies a binary arithmetic operator.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.ValidationError("request body must be a JSON object with a, b and op"))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	answer, err := calc.Calculate(*req.A, *req.B, *req.Op)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, calc.Response{Answer: answer})
}

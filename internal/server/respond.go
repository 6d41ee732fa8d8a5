package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/tablenorm-go/internal/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "Internal server error"
	}

	s.log.Warn("request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("code", errors.GetCode(err)),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	writeJSON(w, status, errorResponse{
		Detail: detail,
		Code:   errors.GetCode(err),
	})
}

package server

import (
	"encoding/json"
	"net/http"

	"otaserve/internal/api"
)

func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, apiErr apiError) {
	message := apiErr.Error()

	fields := []any{"status", apiErr.status, "code", apiErr.code, "error_code", apiErr.errCode, "error", apiErr.err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		if id := RequestIDFromContext(r.Context()); id != "" {
			fields = append(fields, "request_id", id)
		}
	}

	if apiErr.status >= 500 {
		s.log().Error("request error", fields...)
		message = "internal error"
	} else {
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, apiErr.status, api.ErrorResponse{Error: message, Code: apiErr.code, ErrorCode: apiErr.errCode})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// apiError carries the HTTP status and both error codes for a failed request.
type apiError struct {
	status  int
	code    string
	errCode int
	err     error
}

func (e apiError) Error() string {
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

func notFoundCode(err error, code int) apiError {
	return apiError{status: http.StatusNotFound, code: "not_found", errCode: code, err: err}
}

func internalErrorCode(err error, code int) apiError {
	return apiError{status: http.StatusInternalServerError, code: "internal", errCode: code, err: err}
}

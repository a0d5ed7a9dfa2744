package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"otaserve/internal/payload"
)

var errRouteNotFound = errors.New("File not found")

func (s *Server) handleOTA(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.Read(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.log().Debug("client went away before payload read", "path", r.URL.Path, "error", err)
			return
		}
		s.writeErrorReq(w, r, payloadError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log().Warn("write payload response", "path", r.URL.Path, "bytes", len(data), "error", err)
	}
}

func (s *Server) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeErrorReq(w, r, notFoundCode(errRouteNotFound, ErrCodeRouteNotFound))
}

// payloadError maps payload read failures onto API errors. A missing file is
// reported by name only so the on-disk location is not leaked to clients.
func payloadError(err error) apiError {
	if errors.Is(err, payload.ErrNotFound) {
		return notFoundCode(payload.ErrNotFound, ErrCodePayloadNotFound)
	}
	return internalErrorCode(err, ErrCodePayloadRead)
}

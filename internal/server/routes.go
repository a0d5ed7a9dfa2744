package server

import (
	"net/http"
)

// OTAPath is the only route the server answers with content.
const OTAPath = "/ota.json"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// OTA payload.
	mux.HandleFunc("POST "+OTAPath, s.handleOTA)

	// Every other POST path. Other methods get the mux's 405.
	mux.HandleFunc("POST /", s.handleRouteNotFound)

	return s.withExactTarget(mux)
}

// withExactTarget answers requests whose raw target is not exactly OTAPath
// before the mux can clean the path and redirect. Query strings count as part
// of the target.
func (s *Server) withExactTarget(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RequestURI() == OTAPath {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		s.handleRouteNotFound(w, r)
	})
}

// ABOUTME: Request handlers translating HTTP to assistant calls
// ABOUTME: Validation failures map to 400; everything else is a generic 500 with the detail logged
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/acmecloud/askdocs/internal/fault"
)

// maxRequestBytes bounds the request body to keep malformed clients cheap.
const maxRequestBytes = 1 << 20

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAsk(w, r)
	if !ok {
		return
	}

	answer, err := s.assistant.Ask(r.Context(), req.SessionID, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleAskDirect(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAsk(w, r)
	if !ok {
		return
	}

	answer, err := s.assistant.AskDirect(r.Context(), req.SessionID, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeAsk(w http.ResponseWriter, r *http.Request) (askRequest, bool) {
	var req askRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return askRequest{}, false
	}
	return req, true
}

// writeError maps validation failures to 400 with their message. Any other
// failure is logged with its kind and answered with a generic 500 so
// upstream detail never leaks to clients.
func writeError(w http.ResponseWriter, err error) {
	if fault.IsKind(err, fault.KindValidation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	log.Printf("request failed (%s): %v", fault.KindOf(err), err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/yunhang/cloudnav/internal/models"
)

// Health check

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Storage handlers

func (s *Server) getStorageHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.storage.Load()
	if err != nil {
		jsonError(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}
	if data == nil {
		// Nothing saved yet: an empty object tells the client to use its
		// local cache.
		jsonResponse(w, map[string]interface{}{}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) postStorageHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.storage.Save(body); err != nil {
		jsonError(w, "failed to save snapshot", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gaurav-prasanna/navpipe/core"
	"github.com/gaurav-prasanna/navpipe/core/detect"
)

type detectRequest struct {
	HTML     string `json:"html"`
	BaseURL  string `json:"base_url"`
	Selector string `json:"selector"`
}

type detectResponse struct {
	Structure   core.Structure `json:"structure"`
	Entries     []core.Entry   `json:"entries"`
	Depth       int            `json:"depth"`
	Count       int            `json:"count"`
	Fingerprint string         `json:"fingerprint"`
	Strategy    string         `json:"strategy,omitempty"`
	Title       string         `json:"title,omitempty"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request body exceeds %d bytes", s.maxBodyBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.BaseURL) == "" {
		jsonError(w, "base_url is required", http.StatusBadRequest)
		return
	}

	d := s.detector
	if sel := strings.TrimSpace(req.Selector); sel != "" {
		opts := append(append([]detect.Option(nil), s.opts...), detect.WithOverride(sel))
		d = detect.New(opts...)
	}

	res := d.Analyze(req.HTML, req.BaseURL)
	writeJSON(w, http.StatusOK, detectResponse{
		Structure:   res.Structure,
		Entries:     res.Structure.Flatten(),
		Depth:       res.Structure.Depth(),
		Count:       res.Structure.Count(),
		Fingerprint: res.Structure.Fingerprint(),
		Strategy:    res.Strategy,
		Title:       res.Title,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/loandesk/docsort/internal/pipeline"
)

// maxUploadBytes bounds one classify request body (all files combined).
const maxUploadBytes = 64 << 20

// handleClassify accepts a multipart batch of files under the "files" field
// and responds with a mapping from original filename to its DocumentResult.
// A batch of N files always yields N entries; per-document failures appear
// as Error-category entries, never as a whole-batch failure.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	inputs := make([]pipeline.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "failed to read upload "+fh.Filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			http.Error(w, "failed to read upload "+fh.Filename, http.StatusBadRequest)
			return
		}
		inputs = append(inputs, pipeline.Input{Filename: fh.Filename, Data: data})
	}

	results := s.pipeline.ProcessBatch(r.Context(), inputs)

	if s.store != nil {
		for _, result := range results {
			if _, err := s.store.SaveResult(r.Context(), result); err != nil {
				s.logger.Warn("failed to record result", "filename", result.Filename, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, results)
}

// handleHealth reports configuration-load counts and model availability.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"rules":           len(s.ruleset.Rules),
		"categories":      len(s.ruleset.Categories),
		"model_available": s.hasModel,
	})
}

// handleConfig echoes the loaded classification mappings.
func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	keywords := make(map[string][]string, len(s.ruleset.Rules))
	order := make([]string, 0, len(s.ruleset.Rules))
	for _, rule := range s.ruleset.Rules {
		keywords[rule.Subcategory] = rule.Keywords
		order = append(order, rule.Subcategory)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"subcategory_keywords":    keywords,
		"subcategory_order":       order,
		"subcategory_to_category": s.ruleset.Categories,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already written; an encode failure cannot be
	// surfaced to the client at this point.
	_ = json.NewEncoder(w).Encode(payload)
}

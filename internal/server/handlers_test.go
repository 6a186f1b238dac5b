package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loandesk/docsort/internal/classify"
	"github.com/loandesk/docsort/internal/model"
	"github.com/loandesk/docsort/internal/pipeline"
	"github.com/loandesk/docsort/internal/testutil"
	"github.com/loandesk/docsort/internal/textextract"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()

	ruleset := classify.DefaultRuleset()
	p := pipeline.New(textextract.NewPlainText(), classify.NewClassifier(ruleset, nil, nil), nil)

	if withStore {
		return New(p, ruleset, false, testutil.SetupTestStore(t), nil)
	}
	return New(p, ruleset, false, nil, nil)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleClassify(t *testing.T) {
	t.Run("classifies a batch and keys results by filename", func(t *testing.T) {
		srv := newTestServer(t, false)
		body, contentType := multipartBody(t, map[string]string{
			"paystub.txt":  "Client: John Smith\nPaystub for 2024-03",
			"passport.txt": "Canadian passport no. 123456",
		})

		req := httptest.NewRequest(http.MethodPost, "/classify", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var results map[string]model.DocumentResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, model.CategoryIncome, results["paystub.txt"].Category)
		assert.Equal(t, model.CategoryID, results["passport.txt"].Category)
	})

	t.Run("failing document becomes an Error entry, not a failed request", func(t *testing.T) {
		srv := newTestServer(t, false)
		body, contentType := multipartBody(t, map[string]string{
			"ok.txt":      "paystub 2024-05",
			"scan.pdf":    "%PDF-1.4 binary payload",
			"deposit.txt": "RBC Chequing balance: $12,000",
		})

		req := httptest.NewRequest(http.MethodPost, "/classify", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var results map[string]model.DocumentResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 3)
		assert.Equal(t, model.CategoryError, results["scan.pdf"].Category)
		assert.NotEmpty(t, results["scan.pdf"].Error)
		assert.Equal(t, model.CategoryIncome, results["ok.txt"].Category)
		assert.Equal(t, model.CategoryDownPayment, results["deposit.txt"].Category)
	})

	t.Run("persists results when a store is configured", func(t *testing.T) {
		srv := newTestServer(t, true)
		body, contentType := multipartBody(t, map[string]string{
			"paystub.txt": "paystub 2024-03",
		})

		req := httptest.NewRequest(http.MethodPost, "/classify", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		records, err := srv.store.ListResults(req.Context(), 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "paystub.txt", records[0].Filename)
	})

	t.Run("rejects a request with no files", func(t *testing.T) {
		srv := newTestServer(t, false)
		body, contentType := multipartBody(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/classify", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a non-multipart body", func(t *testing.T) {
		srv := newTestServer(t, false)

		req := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewBufferString("plain"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Status         string `json:"status"`
		Rules          int    `json:"rules"`
		Categories     int    `json:"categories"`
		ModelAvailable bool   `json:"model_available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, len(classify.DefaultRuleset().Rules), payload.Rules)
	assert.False(t, payload.ModelAvailable)
}

func TestHandleConfig(t *testing.T) {
	srv := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Keywords map[string][]string `json:"subcategory_keywords"`
		Order    []string            `json:"subcategory_order"`
		Mapping  map[string]string   `json:"subcategory_to_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	ruleset := classify.DefaultRuleset()
	assert.Equal(t, ruleset.Subcategories(), payload.Order)
	assert.Equal(t, ruleset.Categories, payload.Mapping)
	assert.Equal(t, []string{"paystub", "pay stub", "payroll", "earnings statement"}, payload.Keywords["Paystub"])
}

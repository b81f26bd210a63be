package predict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("genome.fasta", 100))
	assert.NoError(t, ValidateUpload("genome.FA", 100), "extension check is case-insensitive")
	assert.NoError(t, ValidateUpload("report.pdf", MaxUploadSize))
	assert.ErrorIs(t, ValidateUpload("genome.exe", 100), models.ErrInvalidFormat)
	assert.ErrorIs(t, ValidateUpload("genome", 100), models.ErrInvalidFormat)
	assert.ErrorIs(t, ValidateUpload("genome.fasta", MaxUploadSize+1), models.ErrFileTooLarge)
}

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/predict", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "genome.fasta", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"fileName": "genome.fasta",
			"date": "2025-03-01T09:00:00",
			"pathogen": "Escherichia coli",
			"mdr": true,
			"genes": ["blaCTX-M"],
			"antibiotics": [{"name": "Meropenem", "susceptible": 92, "resistant": 8}],
			"recommendations": [{"name": "Meropenem", "confidence": 92}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.Predict(context.Background(), "genome.fasta", 10, strings.NewReader(">seq\nACGT"))
	require.NoError(t, err)
	assert.Equal(t, "Escherichia coli", p.Pathogen)
	assert.True(t, p.MDR)
	require.Len(t, p.Antibiotics, 1)
	assert.Equal(t, 92, p.Antibiotics[0].Susceptible)
}

func TestPredictSurfacesBackendErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unsupported sequence alphabet", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Predict(context.Background(), "genome.fasta", 10, strings.NewReader("x"))
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusBadRequest, netErr.StatusCode)
	assert.Equal(t, "Unsupported sequence alphabet", netErr.Body)
}

func TestPredictRejectsBeforeNetworkOnBadInput(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Predict(context.Background(), "genome.exe", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrInvalidFormat)
	_, err = c.Predict(context.Background(), "genome.fasta", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
	assert.Zero(t, hits, "no network call for client-side rejections")
}

func TestSecondUploadWhileBusyIsRejected(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	c.busy.Store(true)
	_, err := c.Predict(context.Background(), "genome.fasta", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrUploadInFlight)
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/history", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"fileName":"a.fasta","date":"2025-03-01","pathogen":"Escherichia coli","mdr":false,"genes":[],"antibiotics":[],"recommendations":[]}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	out, err := c.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a.fasta", out[0].FileName)
}

func TestHistorySurfacesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "history unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.History(context.Background(), 5)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "history unavailable", netErr.Body)
}

package predictions

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/predict"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// An oversized request body must be rejected by the body cap, never
// spooled to disk nor forwarded to the backend.
func TestPredictRejectsOversizedRequestBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be contacted")
	}))
	defer backend.Close()
	h := New(predict.NewClient(backend.URL), repo.NewHistoryCache())

	body, contentType := multipartBody(t, "genome.fasta", bytes.Repeat([]byte("A"), predict.MaxUploadSize+2<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Predict(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictRejectsMissingFile(t *testing.T) {
	h := New(predict.NewClient("http://127.0.0.1:0"), repo.NewHistoryCache())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Predict(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

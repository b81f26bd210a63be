// Package predict talks to the external AMR prediction backend. The core
// consumes the prediction document verbatim; nothing here touches the
// collaboration stores.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

// MaxUploadSize is the client-side cap: anything larger is rejected
// before a byte goes over the wire.
const MaxUploadSize = 5 << 20 // 5 MiB

var acceptedExtensions = map[string]bool{
	".fasta": true,
	".fa":    true,
	".csv":   true,
	".pdf":   true,
}

// NetworkError carries the backend's own error text so the view can
// surface it verbatim.
type NetworkError struct {
	StatusCode int
	Body       string
}

func (e *NetworkError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("prediction backend returned status %d", e.StatusCode)
}

// Client is the HTTP client for the AMR backend. The busy flag is the
// upload gate: one in-flight upload at a time, a second attempt is
// rejected rather than queued, and there is no cancellation.
type Client struct {
	baseURL string
	http    *http.Client
	busy    atomic.Bool
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// ValidateUpload applies the client-side rules: accepted extension and
// size cap. It runs before any network call.
func ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(path.Ext(filename))
	if !acceptedExtensions[ext] {
		return models.ErrInvalidFormat
	}
	if size > MaxUploadSize {
		return models.ErrFileTooLarge
	}
	return nil
}

// Predict uploads one file and returns the structured prediction. While a
// call is outstanding, further calls fail with ErrUploadInFlight.
func (c *Client) Predict(ctx context.Context, filename string, size int64, r io.Reader) (models.Prediction, error) {
	if err := ValidateUpload(filename, size); err != nil {
		return models.Prediction{}, err
	}
	if !c.busy.CompareAndSwap(false, true) {
		return models.Prediction{}, models.ErrUploadInFlight
	}
	defer c.busy.Store(false)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.Prediction{}, err
	}
	if _, err := io.Copy(part, io.LimitReader(r, MaxUploadSize)); err != nil {
		return models.Prediction{}, err
	}
	if err := mw.Close(); err != nil {
		return models.Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", &body)
	if err != nil {
		return models.Prediction{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Prediction{}, &NetworkError{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return models.Prediction{}, &NetworkError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	var p models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.Prediction{}, &NetworkError{StatusCode: resp.StatusCode, Body: "malformed prediction response"}
	}
	return p, nil
}

// History fetches the backend's ordered prediction list for seeding the
// session cache.
func (c *Client) History(ctx context.Context, limit int) ([]models.Prediction, error) {
	url := c.baseURL + "/api/v1/history"
	if limit > 0 {
		url += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &NetworkError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	var out []models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Body: "malformed history response"}
	}
	return out, nil
}

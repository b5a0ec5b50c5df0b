package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrOCRUnavailable means no recognizer is configured or the upstream
// service rejected the request.
var ErrOCRUnavailable = errors.New("ocr service unavailable")

// Recognizer extracts printed text from a scanned document image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// HTTPRecognizer calls an external OCR HTTP service.
type HTTPRecognizer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPRecognizer(url string, timeout time.Duration) *HTTPRecognizer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPRecognizer{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ocrRequest struct {
	Image string `json:"image"`
}

type ocrResponse struct {
	Text string `json:"text"`
}

func (r *HTTPRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	body, _ := json.Marshal(ocrRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrOCRUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read ocr response: %w", err)
	}
	var out ocrResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return out.Text, nil
}

// Package upload publishes rendered charts so embeds can link to them.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Uploader stores an image and returns a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// ErrNotConfigured is returned by a nil or empty HTTPUploader.
var ErrNotConfigured = errors.New("upload: not configured")

// HTTPUploader posts the file as multipart form data to Endpoint.
// The endpoint answers {"url": "..."}; when PublicBaseURL is set the
// response body is ignored and the URL is PublicBaseURL/name.
type HTTPUploader struct {
	Endpoint      string
	Token         string
	PublicBaseURL string
	Client        *http.Client
}

// NewHTTPUploader returns nil when endpoint is empty, so callers can keep a
// nil Uploader and skip uploads.
func NewHTTPUploader(endpoint, token, publicBaseURL string) *HTTPUploader {
	if endpoint == "" {
		return nil
	}
	return &HTTPUploader{
		Endpoint:      endpoint,
		Token:         token,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		Client:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if u == nil || u.Endpoint == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if u.Token != "" {
		req.Header.Set("Authorization", "Bearer "+u.Token)
	}

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload %s: status %d, body: %s", name, resp.StatusCode, string(respBody))
	}

	if u.PublicBaseURL != "" {
		return u.PublicBaseURL + "/" + name, nil
	}
	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload %s: empty url in response", name)
	}
	return result.URL, nil
}

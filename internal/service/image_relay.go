package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrRelayNotConfigured is returned when an upload is requested but no
// image host is configured. Writes carrying an image must abort in that
// case; they never silently drop the image.
var ErrRelayNotConfigured = errors.New("image relay not configured")

// imageRelayResponse mirrors the image host's upload reply. Only the
// public URL is consumed.
type imageRelayResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// ImageRelay uploads binary blobs to the external image host and returns
// publicly fetchable URLs. The relay fails closed: transport errors,
// non-2xx replies and replies without a URL all abort the enclosing
// write. Every upload is attempted exactly once.
type ImageRelay struct {
	httpClient *resty.Client
	key        string
	logger     *zap.Logger
}

// NewImageRelay creates an ImageRelay for the given upload endpoint and
// API key. An empty baseURL yields a disabled relay whose Upload always
// returns ErrRelayNotConfigured.
func NewImageRelay(baseURL, key string, logger *zap.Logger) *ImageRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL == "" {
		return &ImageRelay{logger: logger}
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	return &ImageRelay{httpClient: client, key: key, logger: logger}
}

// Upload sends one image blob to the host and returns its public URL.
func (r *ImageRelay) Upload(ctx context.Context, filename string, blob io.Reader) (string, error) {
	if r == nil || r.httpClient == nil {
		return "", ErrRelayNotConfigured
	}

	var out imageRelayResponse
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", r.key).
		SetFileReader("image", filename, blob).
		SetResult(&out).
		Post("")
	if err != nil {
		r.logger.Warn("image relay upload failed", zap.Error(err))
		return "", fmt.Errorf("image relay: %w", err)
	}
	if resp.IsError() {
		r.logger.Warn("image relay rejected upload",
			zap.Int("status_code", resp.StatusCode()))
		return "", fmt.Errorf("image relay: unexpected status %d", resp.StatusCode())
	}
	if out.Data.URL == "" {
		return "", errors.New("image relay: response carried no url")
	}
	return out.Data.URL, nil
}

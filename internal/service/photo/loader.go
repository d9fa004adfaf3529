package photo

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/pkg/errors"
)

// HTTPLoader checks that a photo URL actually serves an image. Any 2xx counts
// as loaded; the body is discarded.
type HTTPLoader struct {
	client    *http.Client
	userAgent string
}

func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: constants.ImageLoad.RequestTimeout}
	}
	return &HTTPLoader{client: client, userAgent: constants.ImageLoad.UserAgent}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewAPIError("invalid photo url", 0, map[string]any{"url": url}).WithCause(err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("photo request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewAPIError("photo source returned non-2xx", resp.StatusCode, map[string]any{"url": url})
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"golang.org/x/net/html/charset"

	"github.com/oakla/question-maker/internal/httputil"
	"github.com/oakla/question-maker/pkg/types"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 32 << 20

// URLSource fetches text over HTTP. HTML pages are reduced to their
// readable text with one block element per line.
type URLSource struct {
	URL    string
	Client *http.Client
	Config types.HTTPConfig
	Token  string
}

// Read issues a GET, retrying on 429/503, and returns the decoded body.
func (u *URLSource) Read(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request for %s: %w", ErrFetch, u.URL, err)
	}
	if u.Config.UserAgent != "" {
		req.Header.Set("User-Agent", u.Config.UserAgent)
	}
	req.Header.Set("Accept", "text/plain, text/html;q=0.9, */*;q=0.5")
	if u.Token != "" {
		req.Header.Set("Authorization", "Bearer "+u.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, u.Client, req, u.Config.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, u.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d from %s", ErrFetch, resp.StatusCode, u.URL)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), contentType)
	if err != nil {
		return "", fmt.Errorf("%w: decoding %s: %w", ErrFetch, u.URL, err)
	}

	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "text/html" {
		text, err := htmlToText(body)
		if err != nil {
			return "", fmt.Errorf("%w: parsing HTML from %s: %w", ErrFetch, u.URL, err)
		}
		return text, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrFetch, u.URL, err)
	}
	return string(data), nil
}

// Info returns the URL.
func (u *URLSource) Info() string { return u.URL }

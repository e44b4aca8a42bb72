package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPClient returns the client used to fetch URL-sourced files. A zero timeout means
// the request may block for as long as the remote end takes.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (a *Adapter) fetchAll(ctx context.Context, urls string) ([]raw, error) {
	var items []raw
	for _, line := range strings.Split(urls, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		it, err := a.fetch(ctx, line)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (a *Adapter) fetch(ctx context.Context, link string) (raw, error) {
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return raw{}, newError(CodeInvalid, nil)
	}
	u, err := url.Parse(link)
	if err != nil {
		return raw{}, newError(CodeInvalid, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return raw{}, newError(CodeInvalid, err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return raw{}, newError(CodeInvalid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return raw{}, newError(CodeInvalid, nil)
	}
	var src io.Reader = resp.Body
	if limit := a.cfg.MaxFetchBytes; limit > 0 {
		src = io.LimitReader(resp.Body, limit+1)
	}
	body, err := io.ReadAll(src)
	if err != nil {
		return raw{}, newError(CodeInvalid, err)
	}
	if limit := a.cfg.MaxFetchBytes; limit > 0 && int64(len(body)) > limit {
		return raw{}, newError(CodeInvalid, fmt.Errorf("%s is larger than %d bytes", lastSegment(u), limit))
	}

	return raw{
		name: lastSegment(u),
		size: int64(len(body)),
		open: func() (io.ReadSeeker, io.Closer, error) {
			return bytes.NewReader(body), nil, nil
		},
	}, nil
}

func lastSegment(u *url.URL) string {
	return u.Path[strings.LastIndex(u.Path, "/")+1:]
}

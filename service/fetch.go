package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	httpproxy "github.com/fopina/net-proxy-httpconnect/proxy"
	"tvtv2xmltv/global"
	"tvtv2xmltv/model"
)

// Fetch failures carry their phase so callers can tell an unreachable
// service from a bad payload.
var (
	ErrFetchTransport = errors.New("transport error")
	ErrFetchStatus    = errors.New("unexpected status")
	ErrFetchDecode    = errors.New("malformed payload")
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(cfg *model.GuideConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout:   global.HttpClientTimeout,
			Transport: global.TransportWithProxy(cfg.ProxyURL),
		},
		userAgent: cfg.UserAgent,
	}
}

// GetJSON fetches url and decodes the JSON payload into out.
func (f *Fetcher) GetJSON(url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchTransport, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchTransport, err)
	}
	defer global.CloseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d from %s", ErrFetchStatus, resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchTransport, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrFetchDecode, err)
	}
	return nil
}

func init() {
	httpproxy.RegisterSchemes()
}

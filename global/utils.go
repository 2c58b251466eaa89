// utils
package global

import (
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

func IsValidURL(u string) bool {
	_, err := url.ParseRequestURI(u)
	if err == nil {
		uu, err := url.Parse(u)
		return err == nil && uu.Scheme != "" && uu.Host != ""
	}
	return false
}

// MergeUrl resolves partialUrl against baseUrl. A partial starting
// with "/" is taken from the origin of baseUrl.
func MergeUrl(baseUrl string, partialUrl string) string {
	if strings.HasPrefix(partialUrl, "/") {
		u, _ := url.Parse(baseUrl)
		u.Path = ""
		u.RawQuery = ""
		u.Fragment = ""
		return u.String() + partialUrl
	}
	return baseUrl + partialUrl
}

func TransportWithProxy(proxyUrl string) *http.Transport {
	d := &net.Dialer{
		Timeout: HttpClientTimeout,
	}
	tr := &http.Transport{
		Dial:            d.Dial,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	if proxyUrl != "" {
		if u, err := url.Parse(proxyUrl); err == nil {
			if p, e := proxy.FromURL(u, d); e == nil {
				tr.Dial = p.Dial
			} else {
				zap.S().Warnf("proxy setup error: %v", e)
			}
		}
	}
	return tr
}

// CloseBody drains and closes a response body so the connection can
// be reused.
func CloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

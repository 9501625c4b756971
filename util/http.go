package util

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"camwatch/config"

	"go.uber.org/zap"
)

var (
	httpSession     *http.Client
	httpSessionOnce sync.Once
)

func GetHTTPSession() *http.Client {
	httpSessionOnce.Do(func() {
		httpSession = &http.Client{
			Transport: getBaseTransport(),
			Timeout:   20 * time.Second,
		}
	})
	return httpSession
}

func getBaseTransport() *http.Transport {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ResponseHeaderTimeout: 10 * time.Second,
	}
	if config.Env.HTTPProxy != "" || config.Env.HTTPSProxy != "" {
		configureProxyTransport(transport)
	}
	return transport
}

func configureProxyTransport(transport *http.Transport) {
	var httpProxyURL, httpsProxyURL *url.URL
	var err error

	if config.Env.HTTPProxy != "" {
		httpProxyURL, err = url.Parse(config.Env.HTTPProxy)
		if err != nil {
			zap.S().Warnf("invalid HTTP proxy URL '%s': %v", config.Env.HTTPProxy, err)
		}
	}
	if config.Env.HTTPSProxy != "" {
		httpsProxyURL, err = url.Parse(config.Env.HTTPSProxy)
		if err != nil {
			zap.S().Warnf("invalid HTTPS proxy URL '%s': %v", config.Env.HTTPSProxy, err)
		}
	}
	if httpProxyURL == nil && httpsProxyURL == nil {
		return
	}
	noProxyList := parseNoProxyList(config.Env.NoProxy)
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		if shouldBypassProxy(req.URL.Hostname(), noProxyList) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxyURL != nil {
			return httpsProxyURL, nil
		}
		if req.URL.Scheme == "http" && httpProxyURL != nil {
			return httpProxyURL, nil
		}
		if httpsProxyURL != nil {
			return httpsProxyURL, nil
		}
		return httpProxyURL, nil
	}
}

func parseNoProxyList(noProxy string) []string {
	if noProxy == "" {
		return nil
	}
	list := strings.Split(noProxy, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list
}

func shouldBypassProxy(host string, noProxyList []string) bool {
	for _, p := range noProxyList {
		if p == "" {
			continue
		}
		if p == host || (strings.HasPrefix(p, ".") && strings.HasSuffix(host, p)) {
			return true
		}
	}
	return false
}

// FetchText performs a GET with the shared session and browser-like
// headers, returning the response body as a string.
func FetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.Env.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://stripchat.com/")
	req.Header.Set("Origin", "https://stripchat.com")
	for _, cookie := range SessionCookies() {
		req.AddCookie(cookie)
	}
	resp, err := GetHTTPSession().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

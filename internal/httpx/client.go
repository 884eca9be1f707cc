// Package httpx holds the shared outbound HTTP plumbing used by every
// remote adapter (messaging platform, translation backend, preference API).
package httpx

import (
	"net"
	"net/http"
	"time"
)

// NewClient returns a pooled HTTP client with explicit timeouts. Every
// outbound call in the service goes through a client built here; a hung
// remote must never hang an event's processing indefinitely.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

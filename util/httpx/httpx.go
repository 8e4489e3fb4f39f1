// Package httpx holds the shared HTTP client for outbound gateway calls.
package httpx

import (
	"net"
	"net/http"
	"time"
)

// The payout gateway settles synchronously inside a withdraw transaction,
// so the request timeout bounds how long a row lock is held.
const (
	requestTimeout = 15 * time.Second
	dialTimeout    = 3 * time.Second
)

var defaultClient = &http.Client{
	Timeout: requestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        32,
		MaxConnsPerHost:     32,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     60 * time.Second,
	},
}

func Client() *http.Client { return defaultClient }

package utils

import (
	"net"
	"net/http"
	"time"
)

var (
	// SharedHTTPClient is the process-wide HTTP client with sane defaults,
	// used for all outbound API traffic.
	SharedHTTPClient *http.Client
)

func init() {
	// Custom transport with connection pooling and timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   10, // Limit idle connections per host
	}

	SharedHTTPClient = &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second, // Overall request timeout
	}
}

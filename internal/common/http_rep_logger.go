package common

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"ise-marketing/propdesk/internal/logging"
)

// LogHTTPRequest dumps an outbound request at debug level, leaving the body readable.
func LogHTTPRequest(req *http.Request) {
	// Make a copy of the body if it exists
	var bodyCopy []byte
	if req.Body != nil {
		bodyCopy, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		logging.Debug("Failed to dump HTTP request", "error", err)
	} else {
		logging.Debug("Outbound HTTP request", "dump", string(dump))
	}

	// Reset the body again (req.Body may be read again later)
	if bodyCopy != nil {
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
}

// LoggingTransport logs every outbound round trip with its status and latency.
type LoggingTransport struct {
	Base http.RoundTripper
	// Dump also logs the full request via LogHTTPRequest
	Dump bool
}

func NewLoggingTransport(base http.RoundTripper) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{Base: base}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Dump {
		LogHTTPRequest(req)
	}

	start := time.Now()
	resp, err := t.Base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		logging.Debug("Outbound HTTP request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}
	logging.Debug("Outbound HTTP request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
	)
	return resp, nil
}

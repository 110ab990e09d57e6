// Package httpx wraps the net/http calls the registration and check-in
// flows make behind a small injectable interface, generalizing the
// teacher's internal/utils.RequestOptions so tests can stub the
// network instead of hitting android.clients.google.com.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nyxwatch/fcmreceiver/internal/errs"
)

// Doer is satisfied by *http.Client and by any test stub.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestOptions describes a single outgoing HTTP call. API names the
// call for error reporting ("GCM checkin", "GCM registration", ...).
type RequestOptions struct {
	API     string
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	Form    map[string]string
}

// DefaultClient is a Doer with the module's standard per-call timeout.
// Callers needing a different timeout or transport supply their own Doer.
func DefaultClient() Doer {
	return &http.Client{Timeout: 30 * time.Second}
}

// Do performs a single request with no retry, returning the response body.
func Do(ctx context.Context, doer Doer, opts RequestOptions) ([]byte, error) {
	var bodyReader io.Reader
	headers := opts.Headers
	switch {
	case len(opts.Body) > 0:
		bodyReader = bytes.NewReader(opts.Body)
	case len(opts.Form) > 0:
		form := url.Values{}
		for k, v := range opts.Form {
			form.Set(k, v)
		}
		bodyReader = strings.NewReader(form.Encode())
		if headers == nil {
			headers = map[string]string{}
		}
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/x-www-form-urlencoded"
		}
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, errs.Request(opts.API, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, errs.Request(opts.API, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Response(opts.API, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.DependencyFailure(opts.API, fmt.Sprintf("%d: %s", resp.StatusCode, string(body)))
	}

	return body, nil
}

package httpx

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxwatch/fcmreceiver/internal/errs"
)

type funcDoer func(req *http.Request) (*http.Response, error)

func (f funcDoer) Do(req *http.Request) (*http.Response, error) { return f(req) }

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDo_SuccessReturnsBody(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "POST", req.Method)
		return newResponse(200, "ok"), nil
	})

	body, err := Do(context.Background(), doer, RequestOptions{API: "test", URL: "https://example.com", Method: "POST"})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestDo_NonTwoXXIsDependencyFailure(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		return newResponse(500, "server exploded"), nil
	})

	_, err := Do(context.Background(), doer, RequestOptions{API: "test", URL: "https://example.com", Method: "GET"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindDependencyFailure))
}

func TestDo_TransportFailureIsRequestError(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		return nil, assertErr
	})

	_, err := Do(context.Background(), doer, RequestOptions{API: "test", URL: "https://example.com", Method: "GET"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindRequest))
}

func TestDo_EncodesFormBody(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		data, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		values, err := url.ParseQuery(string(data))
		require.NoError(t, err)
		assert.Equal(t, "org.chromium.linux", values.Get("app"))
		return newResponse(200, ""), nil
	})

	_, err := Do(context.Background(), doer, RequestOptions{
		API: "test", URL: "https://example.com", Method: "POST",
		Form: map[string]string{"app": "org.chromium.linux"},
	})
	require.NoError(t, err)
}

var assertErr = &testTransportError{"connection refused"}

type testTransportError struct{ msg string }

func (e *testTransportError) Error() string { return e.msg }

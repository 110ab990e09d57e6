package session

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcDoer func(req *http.Request) (*http.Response, error)

func (f funcDoer) Do(req *http.Request) (*http.Response, error) { return f(req) }

func checkinResponseBytes(androidID, securityToken uint64) []byte {
	var b []byte
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, androidID)
	b = protowire.AppendTag(b, 8, protowire.VarintType)
	b = protowire.AppendVarint(b, securityToken)
	return b
}

func responseBody(status int, body []byte) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(string(body)))}
}

func TestCreate_AnonymousCheckin(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		return responseBody(200, checkinResponseBytes(111, 222)), nil
	})

	sess, err := Create(context.Background(), doer)
	require.NoError(t, err)
	assert.Equal(t, int64(111), sess.AndroidID)
	assert.Equal(t, uint64(222), sess.SecurityToken)
}

func TestCheckin_Idempotent(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		return responseBody(200, checkinResponseBytes(111, 222)), nil
	})

	prev := &Session{AndroidID: 111, SecurityToken: 222}
	checked, err := prev.Checkin(context.Background(), doer)
	require.NoError(t, err)

	assert.False(t, checked.Changed(prev))
	assert.Equal(t, prev.AndroidID, checked.AndroidID)
	assert.Equal(t, prev.SecurityToken, checked.SecurityToken)
}

func TestCheckin_DetectsChange(t *testing.T) {
	doer := funcDoer(func(req *http.Request) (*http.Response, error) {
		return responseBody(200, checkinResponseBytes(111, 999)), nil
	})

	prev := &Session{AndroidID: 111, SecurityToken: 222}
	checked, err := prev.Checkin(context.Background(), doer)
	require.NoError(t, err)

	assert.True(t, checked.Changed(prev))
}

package register

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxwatch/fcmreceiver/pkg/session"
	"github.com/nyxwatch/fcmreceiver/pkg/webpush"
)

func TestRegistration_JSONRoundTrips(t *testing.T) {
	keys, err := webpush.GenerateKeys()
	require.NoError(t, err)

	original := &Registration{
		FCMToken: "fcm-token-abc",
		Session:  session.Session{AndroidID: 123456789012345, SecurityToken: 9876543210987654321},
		Keys:     keys,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Registration
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.FCMToken, decoded.FCMToken)
	assert.Equal(t, original.Session, decoded.Session)
	assert.Equal(t, original.Keys.PublicKey, decoded.Keys.PublicKey)
	assert.Equal(t, original.Keys.PrivateKey, decoded.Keys.PrivateKey)
	assert.Equal(t, original.Keys.AuthSecret, decoded.Keys.AuthSecret)
}

func TestRegistration_JSONRoundTrips_NegativeAndroidID(t *testing.T) {
	keys, err := webpush.GenerateKeys()
	require.NoError(t, err)

	// a negative signed 64-bit android_id must survive the decimal
	// round trip exactly.
	original := &Registration{
		FCMToken: "t",
		Session:  session.Session{AndroidID: -42, SecurityToken: 1},
		Keys:     keys,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Registration
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(-42), decoded.Session.AndroidID)
}

func TestRegistration_JSONUsesDecimalStringsNotNumbers(t *testing.T) {
	keys, err := webpush.GenerateKeys()
	require.NoError(t, err)

	reg := &Registration{
		FCMToken: "t",
		Session:  session.Session{AndroidID: 1, SecurityToken: 18446744073709551615}, // max uint64
		Keys:     keys,
	}

	data, err := json.Marshal(reg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"security_token":"18446744073709551615"`)
}

func TestRegistration_UnmarshalJSON_MalformedAndroidIDFails(t *testing.T) {
	var r Registration
	err := r.UnmarshalJSON([]byte(`{"fcm_token":"t","gcm":{"android_id":"not-a-number","security_token":"1"},"keys":null}`))
	assert.Error(t, err)
}

func TestRegistration_UnmarshalJSON_MalformedSecurityTokenFails(t *testing.T) {
	var r Registration
	err := r.UnmarshalJSON([]byte(`{"fcm_token":"t","gcm":{"android_id":"1","security_token":"not-a-number"},"keys":null}`))
	assert.Error(t, err)
}

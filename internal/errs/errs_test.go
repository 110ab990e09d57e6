package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SetKindAndUnwrap(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"DependencyFailure", DependencyFailure("GCM checkin", "bad response"), KindDependencyFailure},
		{"DependencyRejection", DependencyRejection("GCM registration", "PHONE_REGISTRATION_ERROR"), KindDependencyRejection},
		{"MissingCryptoMetadata", MissingCryptoMetadata("encryption"), KindMissingCrypto},
		{"EmptyPayload", EmptyPayload(), KindEmptyPayload},
		{"ProtobufDecode", ProtobufDecode("LoginRequest", cause), KindProtobufDecode},
		{"Base64Decode", Base64Decode("crypto-key", cause), KindBase64Decode},
		{"Request", Request("FCM registration", cause), KindRequest},
		{"Response", Response("FCM registration", cause), KindResponse},
		{"Crypto", Crypto("message decryption", cause), KindCrypto},
		{"Socket", Socket(cause), KindSocket},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.True(t, Is(tc.err, tc.kind))
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestProtobufDecode_ChainsCause(t *testing.T) {
	cause := errors.New("unexpected wire type")
	err := ProtobufDecode("DataMessageStanza", cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestIs_FalseForDifferentKind(t *testing.T) {
	err := EmptyPayload()
	assert.False(t, Is(err, KindCrypto))
}

func TestIs_WalksWrappedChain(t *testing.T) {
	inner := Socket(errors.New("connection reset"))
	outer := errors.New("wrapped: " + inner.Error())
	assert.False(t, Is(outer, KindSocket)) // a new error built from the message string loses the chain; only %w preserves it

	wrapped := fmt.Errorf("dial: %w", inner)
	assert.True(t, Is(wrapped, KindSocket))
}

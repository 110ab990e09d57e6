// Package errs implements the tagged error taxonomy of the push
// pipeline, mirroring the variant-plus-cause shape of the original
// fcm-push-listener's error enum while staying idiomatic Go: each
// constructor returns an *Error whose Unwrap exposes the underlying
// cause for errors.Is/errors.As and for the host's logger.
package errs

import "fmt"

// Kind identifies which taxonomy variant an Error belongs to.
type Kind string

const (
	KindDependencyFailure   Kind = "dependency_failure"
	KindDependencyRejection Kind = "dependency_rejection"
	KindMissingCrypto       Kind = "missing_crypto_metadata"
	KindEmptyPayload        Kind = "empty_payload"
	KindProtobufDecode      Kind = "protobuf_decode"
	KindBase64Decode        Kind = "base64_decode"
	KindRequest             Kind = "request"
	KindResponse            Kind = "response"
	KindCrypto              Kind = "crypto"
	KindSocket              Kind = "socket"
)

// Error is the module's single tagged error type. API and Detail name
// the locus (an upstream API name, a decode kind, a crypto operation);
// Cause, when present, is reachable via errors.Unwrap.
type Error struct {
	Kind   Kind
	API    string // api_name / which / kind / operation, depending on Kind
	Detail string // reason / free-form detail
	Cause  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.API != "" {
		msg = fmt.Sprintf("%s(%s)", msg, e.API)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DependencyFailure reports that an upstream service returned something
// this client could not make sense of.
func DependencyFailure(api, reason string) *Error {
	return &Error{Kind: KindDependencyFailure, API: api, Detail: reason}
}

// DependencyRejection reports that an upstream service explicitly
// refused the request (e.g. GCM register's "Error=" response body).
func DependencyRejection(api, reason string) *Error {
	return &Error{Kind: KindDependencyRejection, API: api, Detail: reason}
}

// MissingCryptoMetadata reports a data frame lacking the named app-data
// entry ("crypto-key" or "encryption").
func MissingCryptoMetadata(which string) *Error {
	return &Error{Kind: KindMissingCrypto, API: which}
}

// EmptyPayload reports a data frame with no raw_data.
func EmptyPayload() *Error {
	return &Error{Kind: KindEmptyPayload}
}

// ProtobufDecode wraps a malformed-wire-message failure.
func ProtobufDecode(kind string, cause error) *Error {
	return &Error{Kind: KindProtobufDecode, API: kind, Cause: cause}
}

// Base64Decode wraps a malformed-base64-in-header failure.
func Base64Decode(kind string, cause error) *Error {
	return &Error{Kind: KindBase64Decode, API: kind, Cause: cause}
}

// Request wraps an HTTP send failure for the named API.
func Request(api string, cause error) *Error {
	return &Error{Kind: KindRequest, API: api, Cause: cause}
}

// Response wraps an HTTP body-read or status failure for the named API.
func Response(api string, cause error) *Error {
	return &Error{Kind: KindResponse, API: api, Cause: cause}
}

// Crypto wraps an AES-GCM or key-derivation failure for the named
// operation.
func Crypto(operation string, cause error) *Error {
	return &Error{Kind: KindCrypto, API: operation, Cause: cause}
}

// Socket wraps a TCP/TLS I/O failure.
func Socket(cause error) *Error {
	return &Error{Kind: KindSocket, Cause: cause}
}

// Is reports whether err, or anything it wraps, is an *Error of kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

package webpush

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/nyxwatch/fcmreceiver/internal/b64"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	pb "github.com/nyxwatch/fcmreceiver/proto"
)

const recordSize = 4096

var errShortRecord = errors.New("webpush: record shorter than its pad length")

var (
	authInfo  = []byte("Content-Encoding: auth\x00")
	aesgcmInfo = []byte("Content-Encoding: aesgcm\x00")
	nonceInfo  = []byte("Content-Encoding: nonce\x00")
)

// cryptoMetadata is the per-message dh/salt pair carried in a
// DataMessageStanza's app_data, the legacy scheme's analogue of
// aes128gcm's header block.
type cryptoMetadata struct {
	senderPublicKey []byte // decoded "dh" value from crypto-key
	salt            []byte // decoded "salt" value from encryption
}

// extractCryptoMetadata scans a message's app_data for the crypto-key
// and encryption entries the legacy aesgcm encoding requires. Either
// one missing is a MissingCryptoMetadata error naming which.
func extractCryptoMetadata(appData []*pb.AppData) (*cryptoMetadata, error) {
	var dh, salt string
	for _, kv := range appData {
		switch kv.GetKey() {
		case "crypto-key":
			dh = extractParam(kv.GetValue(), "dh=")
		case "encryption":
			salt = extractParam(kv.GetValue(), "salt=")
		}
	}
	if dh == "" {
		return nil, errs.MissingCryptoMetadata("crypto-key")
	}
	if salt == "" {
		return nil, errs.MissingCryptoMetadata("encryption")
	}

	senderPub, err := b64.DecodeHeaderValue(dh)
	if err != nil {
		return nil, errs.Base64Decode("crypto-key", err)
	}
	decodedSalt, err := b64.DecodeHeaderValue(salt)
	if err != nil {
		return nil, errs.Base64Decode("encryption", err)
	}

	return &cryptoMetadata{senderPublicKey: senderPub, salt: decodedSalt}, nil
}

// extractParam pulls out the value of a "name=value" entry from a
// semicolon-separated header-style string (app_data values sometimes
// carry more than one parameter, e.g. "dh=...;rs=4096").
func extractParam(value, prefix string) string {
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, prefix) {
			return strings.TrimPrefix(part, prefix)
		}
	}
	return ""
}

// Decrypt reverses the legacy "aesgcm" Web Push content encoding
// applied to a DataMessageStanza's raw_data, using the registration's
// long-lived key pair and auth secret plus the message's own dh/salt.
//
// This is the pre-RFC-8291 scheme: two HKDF stages (an auth-secret-keyed
// IKM derivation, then per-message content-encryption-key and nonce
// derivations salted per message) rather than the later single-stage
// design, since that is what FCM still delivers to devices registered
// this way.
func (k *Keys) Decrypt(msg *pb.DataMessageStanza) ([]byte, error) {
	if len(msg.GetRawData()) == 0 {
		return nil, errs.EmptyPayload()
	}

	meta, err := extractCryptoMetadata(msg.AppData)
	if err != nil {
		return nil, err
	}

	priv, err := k.ecdhPrivateKey()
	if err != nil {
		return nil, err
	}
	senderPub, err := ecdh.P256().NewPublicKey(meta.senderPublicKey)
	if err != nil {
		return nil, errs.Crypto("parse sender public key", err)
	}

	sharedSecret, err := priv.ECDH(senderPub)
	if err != nil {
		return nil, errs.Crypto("ecdh", err)
	}

	ikm, err := hkdfExpand(32, sharedSecret, k.AuthSecret, authInfo)
	if err != nil {
		return nil, errs.Crypto("derive ikm", err)
	}

	keyContext := p256KeyContext(meta.senderPublicKey, k.PublicKey)
	cek, err := hkdfExpand(16, ikm, meta.salt, append(append([]byte{}, aesgcmInfo...), keyContext...))
	if err != nil {
		return nil, errs.Crypto("derive content encryption key", err)
	}
	nonce, err := hkdfExpand(12, ikm, meta.salt, append(append([]byte{}, nonceInfo...), keyContext...))
	if err != nil {
		return nil, errs.Crypto("derive nonce", err)
	}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, errs.Crypto("new aes cipher", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errs.Crypto("new gcm", err)
	}

	plaintext, err := gcm.Open(nil, nonce, msg.GetRawData(), nil)
	if err != nil {
		return nil, errs.Crypto("message decryption", err)
	}

	return unpad(plaintext)
}

// p256KeyContext builds the legacy scheme's "P-256\x00" context block:
// the curve name, then each public key length-prefixed as a big-endian
// uint16, recipient first.
func p256KeyContext(senderPub, recipientPub []byte) []byte {
	var ctx []byte
	ctx = append(ctx, "P-256\x00"...)
	ctx = appendLenPrefixed(ctx, recipientPub)
	ctx = appendLenPrefixed(ctx, senderPub)
	return ctx
}

func appendLenPrefixed(b, v []byte) []byte {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(v)))
	b = append(b, lenBuf[:]...)
	return append(b, v...)
}

// hkdfExpand runs HKDF-SHA256 extract-then-expand and reads length
// bytes of output.
func hkdfExpand(length int, secret, salt, info []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// unpad strips the legacy record's two-byte pad-length prefix from a
// single-record (length <= recordSize) plaintext.
func unpad(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, errs.Crypto("message decryption", errShortRecord)
	}
	padLen := int(data[0])<<8 | int(data[1])
	if padLen > len(data)-2 {
		return nil, errs.Crypto("message decryption", errShortRecord)
	}
	return data[2+padLen:], nil
}

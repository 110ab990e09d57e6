// Package webpush implements the legacy ("aesgcm") Web Push content
// encoding FCM still uses for messages delivered over MCS, and the
// long-lived P-256 key pair plus auth secret a registration needs to
// decrypt them. The HKDF-derive-then-AEAD shape is grounded on
// daaku-webpush's RFC 8291 Send implementation; the key schedule
// itself is the older two-stage scheme that predates that RFC.
package webpush

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/json"

	"github.com/nyxwatch/fcmreceiver/internal/b64"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
)

// Keys is the long-lived P-256 key pair and auth secret a registration
// uses to decrypt every push it receives until it re-registers.
type Keys struct {
	PublicKey  []byte // uncompressed P-256 point
	PrivateKey []byte // scalar
	AuthSecret []byte // 16 random bytes
}

// keysJSON is Keys' persisted shape: URL-safe, unpadded base64 strings.
type keysJSON struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	AuthSecret string `json:"auth_secret"`
}

// GenerateKeys creates a fresh P-256 key pair and a 16-byte auth secret,
// the material a new FCM registration needs.
func GenerateKeys() (*Keys, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, errs.Crypto("key generation", err)
	}

	auth := make([]byte, 16)
	if _, err := rand.Read(auth); err != nil {
		return nil, errs.Crypto("auth secret generation", err)
	}

	return &Keys{
		PublicKey:  priv.PublicKey().Bytes(),
		PrivateKey: priv.Bytes(),
		AuthSecret: auth,
	}, nil
}

// MarshalJSON renders Keys the way a persisted Registration does:
// URL-safe, unpadded base64 for each field.
func (k *Keys) MarshalJSON() ([]byte, error) {
	return json.Marshal(keysJSON{
		PublicKey:  b64.URLSafe(k.PublicKey),
		PrivateKey: b64.URLSafe(k.PrivateKey),
		AuthSecret: b64.URLSafe(k.AuthSecret),
	})
}

// UnmarshalJSON reverses MarshalJSON.
func (k *Keys) UnmarshalJSON(data []byte) error {
	var kj keysJSON
	if err := json.Unmarshal(data, &kj); err != nil {
		return err
	}

	pub, err := b64.DecodeURLSafe(kj.PublicKey)
	if err != nil {
		return errs.Base64Decode("public_key", err)
	}
	priv, err := b64.DecodeURLSafe(kj.PrivateKey)
	if err != nil {
		return errs.Base64Decode("private_key", err)
	}
	auth, err := b64.DecodeURLSafe(kj.AuthSecret)
	if err != nil {
		return errs.Base64Decode("auth_secret", err)
	}

	k.PublicKey, k.PrivateKey, k.AuthSecret = pub, priv, auth
	return nil
}

// ecdhPrivateKey reconstructs the ecdh.PrivateKey these raw bytes
// represent, for use as the recipient side of a shared-secret derivation.
func (k *Keys) ecdhPrivateKey() (*ecdh.PrivateKey, error) {
	priv, err := ecdh.P256().NewPrivateKey(k.PrivateKey)
	if err != nil {
		return nil, errs.Crypto("load private key", err)
	}
	return priv, nil
}

package webpush

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxwatch/fcmreceiver/internal/b64"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	pb "github.com/nyxwatch/fcmreceiver/proto"
)

// encryptForTest is a sender-side implementation of the legacy
// "aesgcm" encoding: it does the sender's half of the ECDH and the
// AES-GCM seal itself, but reuses this package's hkdfExpand,
// p256KeyContext and info strings for the key schedule, so a fault
// shared by both sides of that schedule would not show up here.
func encryptForTest(t *testing.T, recipient *Keys, plaintext []byte) (rawData []byte, cryptoKeyHeader, encryptionHeader string) {
	t.Helper()

	senderPriv, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	senderPub := senderPriv.PublicKey().Bytes()

	recipientPub, err := ecdh.P256().NewPublicKey(recipient.PublicKey)
	require.NoError(t, err)

	sharedSecret, err := senderPriv.ECDH(recipientPub)
	require.NoError(t, err)

	salt := make([]byte, 16)
	_, err = rand.Read(salt)
	require.NoError(t, err)

	ikm, err := hkdfExpand(32, sharedSecret, recipient.AuthSecret, authInfo)
	require.NoError(t, err)

	keyContext := p256KeyContext(senderPub, recipient.PublicKey)
	cek, err := hkdfExpand(16, ikm, salt, append(append([]byte{}, aesgcmInfo...), keyContext...))
	require.NoError(t, err)
	nonce, err := hkdfExpand(12, ikm, salt, append(append([]byte{}, nonceInfo...), keyContext...))
	require.NoError(t, err)

	var padded []byte
	padded = append(padded, 0, 0) // zero pad length
	padded = append(padded, plaintext...)

	block, err := aes.NewCipher(cek)
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)

	rawData = gcm.Seal(nil, nonce, padded, nil)
	cryptoKeyHeader = "dh=" + b64.URLSafe(senderPub)
	encryptionHeader = "salt=" + b64.URLSafe(salt)
	return rawData, cryptoKeyHeader, encryptionHeader
}

func appData(key, value string) *pb.AppData {
	return &pb.AppData{Key: pb.String(key), Value: pb.String(value)}
}

func TestDecrypt_RoundTripsWithMatchingKeys(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	plaintext := []byte("hello from a push service")
	rawData, cryptoKey, encryption := encryptForTest(t, keys, plaintext)

	msg := &pb.DataMessageStanza{
		RawData: rawData,
		AppData: []*pb.AppData{
			appData("crypto-key", cryptoKey),
			appData("encryption", encryption),
		},
	}

	got, err := keys.Decrypt(msg)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecrypt_EmptyPayloadFails(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	_, err = keys.Decrypt(&pb.DataMessageStanza{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindEmptyPayload))
}

func TestDecrypt_MissingCryptoKeyFails(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	msg := &pb.DataMessageStanza{
		RawData: []byte{0x01, 0x02, 0x03},
		AppData: []*pb.AppData{
			appData("encryption", "salt="+b64.URLSafe([]byte("0123456789012345"))),
		},
	}

	_, err = keys.Decrypt(msg)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingCrypto))
}

func TestDecrypt_MissingEncryptionFails(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	senderPriv, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := &pb.DataMessageStanza{
		RawData: []byte{0x01, 0x02, 0x03},
		AppData: []*pb.AppData{
			appData("crypto-key", "dh="+b64.URLSafe(senderPriv.PublicKey().Bytes())),
		},
	}

	_, err = keys.Decrypt(msg)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingCrypto))
}

func TestDecrypt_WrongKeysFailDecryption(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)
	otherKeys, err := GenerateKeys()
	require.NoError(t, err)

	rawData, cryptoKey, encryption := encryptForTest(t, keys, []byte("secret"))

	msg := &pb.DataMessageStanza{
		RawData: rawData,
		AppData: []*pb.AppData{
			appData("crypto-key", cryptoKey),
			appData("encryption", encryption),
		},
	}

	_, err = otherKeys.Decrypt(msg)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindCrypto))
}

func TestUnpad_StripsPadLengthPrefix(t *testing.T) {
	var data []byte
	data = append(data, 0, 3)
	data = append(data, []byte("xxxhello")...)

	got, err := unpad(data)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestUnpad_ShortRecordFails(t *testing.T) {
	_, err := unpad([]byte{0})
	assert.Error(t, err)
}

func TestExtractParam_SplitsOnSemicolons(t *testing.T) {
	assert.Equal(t, "abc", extractParam("dh=abc;rs=4096", "dh="))
	assert.Equal(t, "", extractParam("rs=4096", "dh="))
}

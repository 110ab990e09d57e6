// Package constants collects the fixed wire-format and endpoint values
// used to impersonate a Chrome-on-Android device: the same role the
// teacher's internal/constants package played, generalized to the
// caller-supplied Registration this module works with instead of a
// single hardcoded device profile.
package constants

// MCSVersion is the one-time version byte sent ahead of the first
// frame on a fresh connection.
const MCSVersion = 41

// Parser states of a single frame decode, in wire order. The codec in
// pkg/mcs decodes a frame in one resumable step and does not use them.
const (
	MCSVersionTagAndSize = iota
	MCSTagAndSize
	MCSSize
	MCSProtoBytes
)

// Fixed packet-length invariants of the framing format.
const (
	VersionPacketLen = 1
	TagPacketLen     = 1
	SizePacketLenMax = 5
)

// MaxFramePayload bounds how large a single frame's declared payload
// length may be before the codec refuses to buffer it. MCS stanzas are
// check-in responses, login responses, heartbeats, and push payloads —
// none legitimately approach this size; it exists so a malformed or
// hostile length varint can't make the stream allocate without bound.
const MaxFramePayload = 1 << 20

// MCS message tags: the same values as proto's Tag* constants, repeated
// here for comparing a tag byte without referring to proto.
const (
	HeartbeatPingTag     = 0
	HeartbeatAckTag      = 1
	LoginRequestTag      = 2
	LoginResponseTag     = 3
	CloseTag             = 4
	IqStanzaTag          = 7
	DataMessageStanzaTag = 8
	StreamErrorStanzaTag = 10
)

// MCS server endpoint.
const (
	MCSHost = "mtalk.google.com"
	MCSPort = "5228"
)

// GCM/FCM HTTP endpoints.
const (
	CheckinURL         = "https://android.clients.google.com/checkin"
	RegisterURL        = "https://android.clients.google.com/c2dm/register3"
	InstallationURLFmt = "https://firebaseinstallations.googleapis.com/v1/projects/%s/installations"
	FCMRegisterURLFmt  = "https://fcmregistrations.googleapis.com/v1/projects/%s/registrations"
	FCMSendURLFmt      = "https://fcm.googleapis.com/fcm/send/%s"
)

// ServerKey is the published GCM sender key for org.chromium.linux,
// already in the URL-safe base64 form the register3 "sender" field
// expects verbatim.
const ServerKey = "BDOU99-h67HcA6JeFXHbSNMu7e2yNNu3RzoMj8TM4W88jITfq7ZmPvIM1Iv-4_l2LxQcYwhqby2xGpWwzjfAnG4"

// ChromeVersion is the impersonated Chrome build string.
const ChromeVersion = "63.0.3234.0"

// GCMAppIDPrefix names the caller-agnostic app id registered against
// GCM ("wp:receiver.push.com#<uuid>").
const GCMAppIDPrefix = "wp:receiver.push.com#"

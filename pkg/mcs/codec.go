// Package mcs implements the Mobile Connection Server wire framing
// (tag byte, varint length, payload) and the pull-driven MessageStream
// built on top of it. The framing decoder is grounded on
// internal/parser.Parser's state machine, generalized from its
// blocking ReadMessage into a resumable decode step a stream can retry
// as more bytes arrive, per original_source/src/push.rs's
// try_read_varint/MessageStream::poll buffering algorithm.
package mcs

import (
	"fmt"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
)

// decodeVarint attempts to decode a little-endian base-128 varint from
// the start of buf. ok is false when buf doesn't yet hold a complete
// varint (the caller should read more bytes and retry); err is non-nil
// only when the varint itself is malformed (longer than
// constants.SizePacketLenMax bytes).
func decodeVarint(buf []byte) (value uint64, size int, ok bool, err error) {
	var shift uint
	for i := 0; i < len(buf); i++ {
		if i >= constants.SizePacketLenMax {
			return 0, 0, false, fmt.Errorf("mcs: varint longer than %d bytes", constants.SizePacketLenMax)
		}
		b := buf[i]
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, i + 1, true, nil
		}
		shift += 7
	}
	return 0, 0, false, nil
}

// decodedFrame is a single fully-buffered tag/payload pair.
type decodedFrame struct {
	tag      uint8
	payload  []byte
	consumed int // bytes of buf this frame occupies, including tag+length
}

// tryDecodeFrame attempts to split one frame off the front of buf.
// frame is nil when buf doesn't yet hold a complete frame; bytesRequired
// is then the caller's updated read-more hint. isClose is true when the
// peeked tag is the Close tag, per §4.6 step 2 the stream terminates on
// sight of it without needing the rest of the frame.
func tryDecodeFrame(buf []byte) (frame *decodedFrame, bytesRequired int, isClose bool, err error) {
	if len(buf) == 0 {
		return nil, 2, false, nil
	}

	tag := buf[0]
	if tag == constants.CloseTag {
		return nil, 0, true, nil
	}

	size, varSize, ok, err := decodeVarint(buf[1:])
	if err != nil {
		return nil, 0, false, err
	}
	if !ok {
		return nil, len(buf) + 1, false, nil
	}
	if size > constants.MaxFramePayload {
		return nil, 0, false, fmt.Errorf("mcs: frame payload %d exceeds max %d", size, constants.MaxFramePayload)
	}

	total := 1 + varSize + int(size)
	if len(buf) < total {
		return nil, total, false, nil
	}

	return &decodedFrame{tag: tag, payload: buf[1+varSize : total], consumed: total}, 2, false, nil
}

// encodeFrame renders a tag/payload pair as wire bytes: tag byte
// followed by a varint length and the payload itself. Used for writing
// client->server frames such as heartbeat acks back onto the stream.
func encodeFrame(tag uint8, payload []byte) []byte {
	out := make([]byte, 0, 1+constants.SizePacketLenMax+len(payload))
	out = append(out, tag)
	out = appendVarint(out, uint64(len(payload)))
	return append(out, payload...)
}

func appendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

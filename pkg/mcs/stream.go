package mcs

import (
	"context"
	"io"
	"net"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/pkg/session"
	"github.com/nyxwatch/fcmreceiver/pkg/webpush"
	pb "github.com/nyxwatch/fcmreceiver/proto"
)

// DataMessage is a decrypted push payload plus the persistent id the
// wire frame carried.
type DataMessage struct {
	Body         []byte
	PersistentID string
}

// OtherMessage is any frame the stream forwards opaquely: known stanza
// types the caller doesn't need decoded (LoginResponse, IqStanza,
// StreamErrorStanza, ...) and unrecognized tags alike.
type OtherMessage struct {
	Tag     uint8
	Payload []byte
}

// Message is the tagged variant MessageStream produces. Exactly one
// field is non-nil.
type Message struct {
	HeartbeatPing *pb.HeartbeatPing
	Data          *DataMessage
	Other         *OtherMessage
}

// MessageStream is a pull-driven lazy sequence of Message values over
// a Connection, replacing the teacher's callback-based listen() loop
// per the pull (lazy-sequence) design the original Rust implementation
// used. It owns the connection exclusively; once it yields terminal
// (Close seen, EOF, or a socket error) the connection is done.
type MessageStream struct {
	conn          net.Conn
	keys          *webpush.Keys
	buf           []byte
	bytesRequired int
	closed        bool
}

// Wrap takes ownership of conn and starts producing Message values from
// it, decrypting DataMessageStanza payloads with keys.
func Wrap(conn *session.Connection, keys *webpush.Keys) *MessageStream {
	return &MessageStream{conn: conn.Conn(), keys: keys, bytesRequired: 2}
}

// Next pulls the next Message from the stream, suspending on reads as
// needed. A nil Message with a nil error signals orderly end of stream
// (Close frame seen, or the underlying connection reached EOF). A
// non-nil error for a data frame's decryption failure does not end the
// stream; subsequent calls to Next continue normally.
func (s *MessageStream) Next(ctx context.Context) (*Message, error) {
	for {
		if s.closed {
			return nil, nil
		}

		if len(s.buf) == 0 && s.bytesRequired == 0 {
			s.closed = true
			return nil, nil
		}

		frame, bytesRequired, isClose, err := tryDecodeFrame(s.buf)
		if err != nil {
			s.terminate()
			return nil, errs.ProtobufDecode("MCS frame length", err)
		}
		if isClose {
			s.terminate()
			return nil, nil
		}
		if frame != nil {
			s.buf = s.buf[frame.consumed:]
			s.bytesRequired = bytesRequired
			return s.dispatch(frame.tag, frame.payload)
		}
		s.bytesRequired = bytesRequired

		if err := s.fill(ctx); err != nil {
			if err == io.EOF {
				s.terminate()
				return nil, nil
			}
			s.terminate()
			return nil, errs.Socket(err)
		}
	}
}

// fill reads at least one more chunk of bytes from the connection into
// the receive buffer.
func (s *MessageStream) fill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	want := s.bytesRequired
	if want < 512 {
		want = 512
	}
	chunk := make([]byte, want)

	n, err := s.conn.Read(chunk)
	if n > 0 {
		s.buf = append(s.buf, chunk[:n]...)
	}
	if n == 0 && err == nil {
		return io.EOF
	}
	return err
}

func (s *MessageStream) terminate() {
	s.buf = nil
	s.bytesRequired = 0
	s.closed = true
}

// dispatch decodes a fully-buffered frame's payload and yields the
// corresponding Message.
func (s *MessageStream) dispatch(tag uint8, payload []byte) (*Message, error) {
	switch tag {
	case constants.HeartbeatPingTag:
		decoded, err := pb.UnmarshalByTag(uint8(pb.TagHeartbeatPing), payload)
		if err != nil {
			return nil, errs.ProtobufDecode("HeartbeatPing", err)
		}
		return &Message{HeartbeatPing: decoded.(*pb.HeartbeatPing)}, nil

	case constants.DataMessageStanzaTag:
		decoded, err := pb.UnmarshalByTag(uint8(pb.TagDataMessageStanza), payload)
		if err != nil {
			return nil, errs.ProtobufDecode("DataMessageStanza", err)
		}
		stanza := decoded.(*pb.DataMessageStanza)
		body, err := s.keys.Decrypt(stanza)
		if err != nil {
			return nil, err
		}
		return &Message{Data: &DataMessage{Body: body, PersistentID: stanza.GetPersistentId()}}, nil

	default:
		return &Message{Other: &OtherMessage{Tag: tag, Payload: payload}}, nil
	}
}

// HeartbeatAckFrame renders the wire bytes for a heartbeat ack: the
// helper callers use to write an ack back onto the stream in response
// to a yielded HeartbeatPing, per the design note that the stream
// itself never writes.
func HeartbeatAckFrame() []byte {
	return encodeFrame(constants.HeartbeatAckTag, pb.NewHeartbeatAck().Marshal())
}

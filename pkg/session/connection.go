package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	pb "github.com/nyxwatch/fcmreceiver/proto"
)

// Connection is a TLS stream to mtalk.google.com:5228 with the MCS
// login handshake already completed. It is owned exclusively by
// whatever MessageStream wraps it.
type Connection struct {
	conn net.Conn
}

// Conn exposes the underlying net.Conn for a MessageStream to read/write.
func (c *Connection) Conn() net.Conn { return c.conn }

// Close closes the underlying TLS stream.
func (c *Connection) Close() error { return c.conn.Close() }

// dialTimeout bounds the TCP connect + TLS handshake, not the whole
// login exchange; it is not the 20-second retry-decision threshold
// described in NewConnection's doc comment, which is the caller's concern.
const dialTimeout = 30 * time.Second

// NewConnection builds the MCS LoginRequest, opens a fresh TLS
// connection to mtalk.google.com:5228, writes the version-prefixed
// first frame (version byte, tag, varint length, LoginRequest body),
// and consumes the server's echoed version byte.
//
// A failure occurring less than 20 seconds after the call started
// should be surfaced immediately; a failure after that point more
// likely indicates a mid-session disconnect worth retrying. That
// decision belongs to the caller driving the retry loop: NewConnection
// does not record or report elapsed time, so the caller times the call
// with its own clock.
func (c *CheckedSession) NewConnection(ctx context.Context, receivedPersistentIDs []string) (*Connection, error) {
	login := c.buildLoginRequest(receivedPersistentIDs)
	body, err := login.Marshal()
	if err != nil {
		return nil, errs.ProtobufDecode("LoginRequest", err)
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	addr := net.JoinHostPort(constants.MCSHost, constants.MCSPort)
	tlsConn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: constants.MCSHost})
	if err != nil {
		return nil, errs.Socket(err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = tlsConn.SetDeadline(deadline)
	}

	frame := make([]byte, 0, 2+protowire.SizeVarint(uint64(len(body)))+len(body))
	frame = append(frame, byte(constants.MCSVersion), byte(pb.TagLoginRequest))
	frame = protowire.AppendVarint(frame, uint64(len(body)))
	frame = append(frame, body...)

	if _, err := tlsConn.Write(frame); err != nil {
		tlsConn.Close()
		return nil, errs.Socket(err)
	}

	var versionEcho [1]byte
	if _, err := tlsConn.Read(versionEcho[:]); err != nil {
		tlsConn.Close()
		return nil, errs.Socket(err)
	}

	_ = tlsConn.SetDeadline(time.Time{})

	return &Connection{conn: tlsConn}, nil
}

// buildLoginRequest fills in the fixed fields §4.4 mandates for a
// Chrome-on-Android login, grounded on the teacher's buildLoginRequest.
func (c *CheckedSession) buildLoginRequest(receivedPersistentIDs []string) *pb.LoginRequest {
	authService := pb.AuthServiceAndroidID
	return &pb.LoginRequest{
		AdaptiveHeartbeat:    pb.Bool(false),
		AuthService:          pb.Int32(authService),
		AuthToken:            pb.String(fmt.Sprintf("%d", c.SecurityToken)),
		Id:                   pb.String("chrome-63.0.3234.0"),
		Domain:               pb.String("mcs.android.com"),
		DeviceId:             pb.String(fmt.Sprintf("android-%x", uint64(c.AndroidID))),
		NetworkType:          pb.Int32(1),
		Resource:             pb.String(fmt.Sprintf("%d", c.AndroidID)),
		User:                 pb.String(fmt.Sprintf("%d", c.AndroidID)),
		UseRmq2:              pb.Bool(true),
		Setting:              []*pb.Setting{{Name: pb.String("new_vc"), Value: pb.String("1")}},
		ReceivedPersistentId: receivedPersistentIDs,
	}
}

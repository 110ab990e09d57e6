// Package session owns the Android check-in identity and the MCS
// connection it unlocks. Session/CheckedSession are split into two
// types (generalizing the teacher's single mutable Client) so that
// opening a connection is only reachable through a value that has just
// been confirmed by the check-in service — never through stale or
// never-checked-in credentials.
package session

import (
	"context"

	"github.com/nyxwatch/fcmreceiver/internal/gcmapi"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
)

// Session is a device's check-in identity: an android_id/security_token
// pair. The zero value represents a not-yet-registered device; Create
// performs the initial anonymous check-in and returns a populated one.
type Session struct {
	AndroidID     int64
	SecurityToken uint64
}

// Create performs the initial anonymous check-in: both ids are absent
// from the request, and the response assigns them for the first time.
func Create(ctx context.Context, doer httpx.Doer) (*Session, error) {
	result, err := gcmapi.Checkin(ctx, doer, nil, nil)
	if err != nil {
		return nil, err
	}
	return &Session{AndroidID: result.AndroidID, SecurityToken: result.SecurityToken}, nil
}

// Checkin refreshes this session's credentials against the check-in
// service and returns a CheckedSession, the only value a caller can
// open a new connection with.
func (s *Session) Checkin(ctx context.Context, doer httpx.Doer) (*CheckedSession, error) {
	result, err := gcmapi.Checkin(ctx, doer, &s.AndroidID, &s.SecurityToken)
	if err != nil {
		return nil, err
	}
	return &CheckedSession{
		Session: Session{AndroidID: result.AndroidID, SecurityToken: result.SecurityToken},
	}, nil
}

// CheckedSession is a Session the check-in service has just confirmed.
// Only a CheckedSession can open a new MCS connection.
type CheckedSession struct {
	Session
}

// Changed reports whether either credential differs from prev, the
// signal a caller uses to decide whether a persisted Registration needs
// rewriting.
func (c *CheckedSession) Changed(prev *Session) bool {
	return c.AndroidID != prev.AndroidID || c.SecurityToken != prev.SecurityToken
}

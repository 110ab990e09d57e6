// Package register composes the four HTTP calls in internal/gcmapi into
// the single register() operation spec.md §4.2.5 describes, grounded on
// the teacher's pkg/register/service.go:Register. The teacher's
// Rust-Companion-specific steps — Expo push token exchange, RustPlus
// registration, JWT Steam ID extraction — are application-specific and
// dropped rather than adapted: this package's contract ends at
// Registration{fcm_token, session, keys}, the same boundary spec.md §1
// draws around the core.
package register

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/gcmapi"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
	"github.com/nyxwatch/fcmreceiver/pkg/session"
	"github.com/nyxwatch/fcmreceiver/pkg/webpush"
)

// Options names the caller-supplied Firebase app context a registration
// needs on top of the check-in/GCM steps, which require no configuration.
type Options struct {
	FirebaseAppID    string
	FirebaseProjectID string
	FirebaseAPIKey   string
	VapidKey         string // optional; forwarded as applicationPubKey
}

// Registration is the value a caller persists between runs: the FCM
// subscription token, the check-in session it was issued under, and
// the Web Push key material needed to decrypt messages sent to it.
type Registration struct {
	FCMToken string
	Session  session.Session
	Keys     *webpush.Keys
}

// Register runs the full registration ceremony: check-in, GCM c2dm
// registration, Firebase installation, and FCM registration, in that
// strict order, short-circuiting on the first error since every step
// depends on the previous one's output.
func Register(ctx context.Context, doer httpx.Doer, opts Options) (*Registration, error) {
	sess, err := session.Create(ctx, doer)
	if err != nil {
		return nil, err
	}

	gcmAppID := fmt.Sprintf("%s%s", constants.GCMAppIDPrefix, uuid.New().String())
	gcmToken, err := gcmapi.GCMRegister(ctx, doer, sess.AndroidID, sess.SecurityToken, gcmAppID)
	if err != nil {
		return nil, err
	}

	installation, err := gcmapi.CreateInstallation(ctx, doer, gcmapi.InstallationOptions{
		AppID:     opts.FirebaseAppID,
		ProjectID: opts.FirebaseProjectID,
		APIKey:    opts.FirebaseAPIKey,
	})
	if err != nil {
		return nil, err
	}

	fcm, err := gcmapi.FCMRegister(ctx, doer, gcmapi.FCMRegisterOptions{
		ProjectID:             opts.FirebaseProjectID,
		APIKey:                opts.FirebaseAPIKey,
		GCMToken:              gcmToken,
		InstallationAuthToken: installation.AuthToken,
		ApplicationPubKey:     opts.VapidKey,
	})
	if err != nil {
		return nil, err
	}

	return &Registration{FCMToken: fcm.Token, Session: *sess, Keys: fcm.Keys}, nil
}

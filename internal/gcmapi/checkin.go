// Package gcmapi collects the four HTTP calls a device makes against
// Google's GCM/Firebase backends during registration and re-check-in:
// android check-in, GCM c2dm registration, Firebase installation, and
// FCM token registration. Each is grounded on the teacher's
// internal/gcm and pkg/register packages, generalized to take an
// injected httpx.Doer instead of dialing out directly.
package gcmapi

import (
	"context"
	"math"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
	pb "github.com/nyxwatch/fcmreceiver/proto"
)

const checkinAPI = "GCM checkin"

// CheckinResult is the subset of AndroidCheckinResponse callers need.
// AndroidID is signed per the data model; the unsigned wire value is
// range-checked on the way in.
type CheckinResult struct {
	AndroidID     int64
	SecurityToken uint64
}

// Checkin performs an Android check-in. Pass id/securityToken nil for
// the initial anonymous check-in; pass the previously assigned values
// to refresh an existing registration.
func Checkin(ctx context.Context, doer httpx.Doer, id *int64, securityToken *uint64) (*CheckinResult, error) {
	req := &pb.AndroidCheckinRequest{
		Version:          pb.Int32(3),
		UserSerialNumber: pb.Int32(0),
		Id:               id,
		SecurityToken:    securityToken,
		Checkin: &pb.AndroidCheckinProto{
			Type: pb.Int32(int32(pb.DeviceChromeBrowser)),
			ChromeBuild: &pb.ChromeBuildProto{
				Platform:      pb.Int32(int32(pb.PlatformLinux)),
				ChromeVersion: pb.String(constants.ChromeVersion),
				Channel:       pb.Int32(int32(pb.ChannelStable)),
			},
		},
	}

	body, err := req.Marshal()
	if err != nil {
		return nil, errs.ProtobufDecode("AndroidCheckinRequest", err)
	}

	respBody, err := httpx.Do(ctx, doer, httpx.RequestOptions{
		API:     checkinAPI,
		URL:     constants.CheckinURL,
		Method:  "POST",
		Headers: map[string]string{"Content-Type": "application/x-protobuf"},
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	resp, err := pb.UnmarshalAndroidCheckinResponse(respBody)
	if err != nil {
		return nil, errs.ProtobufDecode("AndroidCheckinResponse", err)
	}
	if resp.AndroidId == nil || resp.SecurityToken == nil {
		return nil, errs.DependencyFailure(checkinAPI, "response missing android_id/security_token")
	}
	if resp.GetAndroidId() > math.MaxInt64 {
		return nil, errs.DependencyFailure(checkinAPI, "responded with non-numeric android id")
	}

	return &CheckinResult{
		AndroidID:     int64(resp.GetAndroidId()),
		SecurityToken: resp.GetSecurityToken(),
	}, nil
}

// ServerKeyBase64 is the published GCM sender key for org.chromium.linux,
// already URL-safe base64 and used verbatim in the register3 "sender" form field.
func ServerKeyBase64() string {
	return constants.ServerKey
}

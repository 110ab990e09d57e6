package gcmapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nyxwatch/fcmreceiver/internal/b64"
	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
	"github.com/nyxwatch/fcmreceiver/pkg/webpush"
)

const fcmRegisterAPI = "FCM registration"

type fcmRegisterRequest struct {
	Web fcmRegisterWeb `json:"web"`
}

type fcmRegisterWeb struct {
	ApplicationPubKey string `json:"applicationPubKey,omitempty"`
	Endpoint          string `json:"endpoint"`
	Auth              string `json:"auth"`
	P256dh            string `json:"p256dh"`
}

type fcmRegisterResponse struct {
	Token string `json:"token"`
}

// FCMRegisterOptions names the caller-supplied project/app context an
// FCM registration call needs on top of the GCM token it exchanges.
type FCMRegisterOptions struct {
	ProjectID            string
	APIKey               string
	GCMToken             string
	InstallationAuthToken string
	ApplicationPubKey    string // optional VAPID key, rarely set for this flow
}

// FCMRegisterResult is a completed FCM registration: the subscription
// token, and the key material generated for it.
type FCMRegisterResult struct {
	Token string
	Keys  *webpush.Keys
}

// FCMRegister exchanges a GCM registration token for an FCM subscription
// token, generating a fresh Web Push key pair and auth secret as it
// goes and handing both back so the caller can persist them alongside
// the token.
func FCMRegister(ctx context.Context, doer httpx.Doer, opts FCMRegisterOptions) (*FCMRegisterResult, error) {
	keys, err := webpush.GenerateKeys()
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(fcmRegisterRequest{
		Web: fcmRegisterWeb{
			ApplicationPubKey: opts.ApplicationPubKey,
			Endpoint:          fmt.Sprintf(constants.FCMSendURLFmt, opts.GCMToken),
			Auth:              b64.URLSafe(keys.AuthSecret),
			P256dh:            b64.URLSafe(keys.PublicKey),
		},
	})
	if err != nil {
		return nil, errs.Request(fcmRegisterAPI, err)
	}

	respBody, err := httpx.Do(ctx, doer, httpx.RequestOptions{
		API:    fcmRegisterAPI,
		URL:    fmt.Sprintf(constants.FCMRegisterURLFmt, opts.ProjectID),
		Method: "POST",
		Headers: map[string]string{
			"Content-Type":                        "application/json",
			"x-goog-api-key":                      opts.APIKey,
			"x-goog-firebase-installations-auth":  opts.InstallationAuthToken,
		},
		Body: reqBody,
	})
	if err != nil {
		return nil, err
	}

	var resp fcmRegisterResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errs.DependencyFailure(fcmRegisterAPI, "malformed JSON response")
	}
	if resp.Token == "" {
		return nil, errs.DependencyFailure(fcmRegisterAPI, "response missing token")
	}

	return &FCMRegisterResult{Token: resp.Token, Keys: keys}, nil
}

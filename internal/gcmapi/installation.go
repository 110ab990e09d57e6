package gcmapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/nyxwatch/fcmreceiver/internal/b64"
	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
)

const installationAPI = "Firebase installation"

// firebaseClientHeader is the URL-safe-no-pad base64 of the literal
// JSON object `{"heartbeats": [], "version": 2}`, the value Firebase's
// installation endpoint expects for x-firebase-client.
var firebaseClientHeader = b64.URLSafe([]byte(`{"heartbeats": [], "version": 2}`))

type installationRequest struct {
	AppID       string `json:"appId"`
	AuthVersion string `json:"authVersion"`
	FID         string `json:"fid"`
	SDKVersion  string `json:"sdkVersion"`
}

type installationResponse struct {
	AuthToken struct {
		Token string `json:"token"`
	} `json:"authToken"`
}

// InstallationOptions names the caller-supplied Firebase project the
// generated installation is created under.
type InstallationOptions struct {
	AppID  string
	ProjectID string
	APIKey string
}

// InstallationResult is a fresh Firebase installation: the generated FID
// and the auth token FCM registration needs for
// x-goog-firebase-installations-auth.
type InstallationResult struct {
	FID       string
	AuthToken string
}

// CreateInstallation registers a new Firebase Installation ID, the step
// that must complete before the FCM registration call, which carries
// the returned auth token in its installations-auth header.
func CreateInstallation(ctx context.Context, doer httpx.Doer, opts InstallationOptions) (*InstallationResult, error) {
	fid, err := GenerateFID()
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(installationRequest{
		AppID:       opts.AppID,
		AuthVersion: "FIS_v2",
		FID:         fid,
		SDKVersion:  "w:0.6.4",
	})
	if err != nil {
		return nil, errs.Request(installationAPI, err)
	}

	respBody, err := httpx.Do(ctx, doer, httpx.RequestOptions{
		API:    installationAPI,
		URL:    fmt.Sprintf(constants.InstallationURLFmt, opts.ProjectID),
		Method: "POST",
		Headers: map[string]string{
			"Content-Type":      "application/json",
			"x-goog-api-key":    opts.APIKey,
			"x-firebase-client": firebaseClientHeader,
		},
		Body: reqBody,
	})
	if err != nil {
		return nil, err
	}

	var resp installationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errs.DependencyFailure(installationAPI, "malformed JSON response")
	}
	if resp.AuthToken.Token == "" {
		return nil, errs.DependencyFailure(installationAPI, "response missing authToken.token")
	}

	return &InstallationResult{FID: fid, AuthToken: resp.AuthToken.Token}, nil
}

// GenerateFID generates a Firebase Installation ID: 17 random bytes
// with the top nibble of the first byte forced to 0b0111, URL-safe
// base64 encoded without padding.
// https://github.com/firebase/firebase-js-sdk/blob/master/packages/installations/src/helpers/generate-fid.ts
func GenerateFID() (string, error) {
	buf := make([]byte, 17)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Crypto("fid generation", err)
	}
	buf[0] = 0b01110000 | (buf[0] & 0b00001111)
	return b64.URLSafe(buf), nil
}

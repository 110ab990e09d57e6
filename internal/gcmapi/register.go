package gcmapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyxwatch/fcmreceiver/internal/constants"
	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/internal/httpx"
)

const registerAPI = "GCM registration"

// GCMRegister exchanges check-in credentials for a GCM registration
// token (the input to Firebase Installation/FCM registration) via
// android.clients.google.com/c2dm/register3. The response body is
// "key=value"; key=="Error" is an upstream rejection, not retried, and
// a response with no "=" at all is a malformed response.
func GCMRegister(ctx context.Context, doer httpx.Doer, androidID int64, securityToken uint64, appID string) (string, error) {
	form := map[string]string{
		"app":       "org.chromium.linux",
		"X-subtype": appID,
		"device":    fmt.Sprintf("%d", androidID),
		"sender":    ServerKeyBase64(),
	}

	reqOpts := httpx.RequestOptions{
		API:    registerAPI,
		URL:    constants.RegisterURL,
		Method: "POST",
		Headers: map[string]string{
			"Authorization": fmt.Sprintf("AidLogin %d:%d", androidID, securityToken),
		},
		Form: form,
	}

	body, err := httpx.Do(ctx, doer, reqOpts)
	if err != nil {
		return "", err
	}

	key, value, found := strings.Cut(string(body), "=")
	if !found {
		return "", errs.DependencyFailure(registerAPI, "malformed response")
	}
	if key == "Error" {
		return "", errs.DependencyRejection(registerAPI, value)
	}
	return value, nil
}

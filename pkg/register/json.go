package register

import (
	"encoding/json"
	"strconv"

	"github.com/nyxwatch/fcmreceiver/internal/errs"
	"github.com/nyxwatch/fcmreceiver/pkg/session"
	"github.com/nyxwatch/fcmreceiver/pkg/webpush"
)

// registrationJSON is Registration's persisted shape: android_id and
// security_token as decimal strings (a JSON number would lose precision
// on a 64-bit value), keys via webpush.Keys' own base64 MarshalJSON.
type registrationJSON struct {
	FCMToken string `json:"fcm_token"`
	GCM      struct {
		AndroidID     string `json:"android_id"`
		SecurityToken string `json:"security_token"`
	} `json:"gcm"`
	Keys *webpush.Keys `json:"keys"`
}

// MarshalJSON renders Registration the way a caller persists it between runs.
func (r *Registration) MarshalJSON() ([]byte, error) {
	var rj registrationJSON
	rj.FCMToken = r.FCMToken
	rj.GCM.AndroidID = strconv.FormatInt(r.Session.AndroidID, 10)
	rj.GCM.SecurityToken = strconv.FormatUint(r.Session.SecurityToken, 10)
	rj.Keys = r.Keys
	return json.Marshal(rj)
}

// UnmarshalJSON reverses MarshalJSON.
func (r *Registration) UnmarshalJSON(data []byte) error {
	var rj registrationJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}

	androidID, err := strconv.ParseInt(rj.GCM.AndroidID, 10, 64)
	if err != nil {
		return errs.DependencyFailure("Registration", "malformed android_id")
	}
	securityToken, err := strconv.ParseUint(rj.GCM.SecurityToken, 10, 64)
	if err != nil {
		return errs.DependencyFailure("Registration", "malformed security_token")
	}

	r.FCMToken = rj.FCMToken
	r.Session = session.Session{AndroidID: androidID, SecurityToken: securityToken}
	r.Keys = rj.Keys
	return nil
}

package proto

import "fmt"

// MCS tags, matching the well-known Android MCS proto registry.
// internal/constants repeats the subset the message stream dispatches on.
const (
	TagHeartbeatPing       = 0
	TagHeartbeatAck        = 1
	TagLoginRequest        = 2
	TagLoginResponse       = 3
	TagClose               = 4
	TagMessageStanza       = 5
	TagPresenceStanza      = 6
	TagIqStanza            = 7
	TagDataMessageStanza   = 8
	TagBatchPresenceStanza = 9
	TagStreamErrorStanza   = 10
)

// UnmarshalByTag decodes data into the concrete type registered for tag,
// returning it as the empty interface the way a reflection-based
// generated package would return a proto.Message.
func UnmarshalByTag(tag uint8, data []byte) (interface{}, error) {
	switch tag {
	case TagHeartbeatPing:
		return unmarshalHeartbeatPing(data)
	case TagHeartbeatAck:
		return unmarshalHeartbeatAck(data)
	case TagLoginResponse:
		return unmarshalLoginResponse(data)
	case TagClose:
		return unmarshalClose(data)
	case TagIqStanza:
		return unmarshalIqStanza(data)
	case TagDataMessageStanza:
		return unmarshalDataMessageStanza(data)
	case TagStreamErrorStanza:
		return unmarshalStreamErrorStanza(data)
	default:
		return nil, fmt.Errorf("proto: no decoder registered for tag %d", tag)
	}
}

package proto

import "google.golang.org/protobuf/encoding/protowire"

// LoginRequest_AuthService mirrors the login request's auth_service enum.
const (
	AuthServiceGoogleLogin int32 = 1
	AuthServiceAndroidID   int32 = 2
)

// Setting is a single key/value login-time setting (e.g. new_vc=1).
type Setting struct {
	Name  *string
	Value *string
}

const (
	settingName  protowire.Number = 1
	settingValue protowire.Number = 2
)

func (m *Setting) GetName() string  { return strVal(m.Name) }
func (m *Setting) GetValue() string { return strVal(m.Value) }

func (m *Setting) Marshal() []byte {
	var b []byte
	if m.Name != nil {
		b = appendStringField(b, settingName, *m.Name)
	}
	if m.Value != nil {
		b = appendStringField(b, settingValue, *m.Value)
	}
	return b
}

func unmarshalSetting(data []byte) (*Setting, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &Setting{}
	if v, ok := lastString(fields, settingName); ok {
		m.Name = String(v)
	}
	if v, ok := lastString(fields, settingValue); ok {
		m.Value = String(v)
	}
	return m, nil
}

// LoginRequest is the first frame sent on a fresh MCS connection. It is
// always preceded on the wire by the one-time version byte.
type LoginRequest struct {
	Id                   *string
	Domain               *string
	User                 *string
	Resource             *string
	AuthToken            *string
	DeviceId             *string
	LastRmqId            *int64
	Setting              []*Setting
	CompressionRequired   *bool
	ReceivedPersistentId []string
	AdaptiveHeartbeat    *bool
	UseRmq2              *bool
	AuthService          *int32
	NetworkType          *int32
}

const (
	loginID                   protowire.Number = 1
	loginDomain               protowire.Number = 2
	loginUser                 protowire.Number = 3
	loginResource             protowire.Number = 4
	loginAuthToken            protowire.Number = 5
	loginDeviceID             protowire.Number = 6
	loginLastRmqID            protowire.Number = 7
	loginSetting              protowire.Number = 8
	loginCompressionRequired  protowire.Number = 9
	loginReceivedPersistentID protowire.Number = 10
	loginAdaptiveHeartbeat    protowire.Number = 12
	loginUseRmq2              protowire.Number = 14
	loginAuthService          protowire.Number = 16
	loginNetworkType          protowire.Number = 17
)

func (m *LoginRequest) Marshal() ([]byte, error) {
	var b []byte
	if m.Id != nil {
		b = appendStringField(b, loginID, *m.Id)
	}
	if m.Domain != nil {
		b = appendStringField(b, loginDomain, *m.Domain)
	}
	if m.User != nil {
		b = appendStringField(b, loginUser, *m.User)
	}
	if m.Resource != nil {
		b = appendStringField(b, loginResource, *m.Resource)
	}
	if m.AuthToken != nil {
		b = appendStringField(b, loginAuthToken, *m.AuthToken)
	}
	if m.DeviceId != nil {
		b = appendStringField(b, loginDeviceID, *m.DeviceId)
	}
	if m.LastRmqId != nil {
		b = appendVarintField(b, loginLastRmqID, uint64(*m.LastRmqId))
	}
	for _, s := range m.Setting {
		b = appendMessageField(b, loginSetting, s.Marshal())
	}
	if m.CompressionRequired != nil {
		b = appendBoolField(b, loginCompressionRequired, *m.CompressionRequired)
	}
	for _, id := range m.ReceivedPersistentId {
		b = appendStringField(b, loginReceivedPersistentID, id)
	}
	if m.AdaptiveHeartbeat != nil {
		b = appendBoolField(b, loginAdaptiveHeartbeat, *m.AdaptiveHeartbeat)
	}
	if m.UseRmq2 != nil {
		b = appendBoolField(b, loginUseRmq2, *m.UseRmq2)
	}
	if m.AuthService != nil {
		b = appendVarintField(b, loginAuthService, uint64(*m.AuthService))
	}
	if m.NetworkType != nil {
		b = appendVarintField(b, loginNetworkType, uint64(*m.NetworkType))
	}
	return b, nil
}

// LoginResponse is the server's reply authenticating the connection.
// Its arrival is the handshake-complete signal for the message stream.
type LoginResponse struct {
	Id                   *string
	Error                *StreamErrorStanza
	ServerTimestamp      *int64
}

const (
	loginRespID        protowire.Number = 1
	loginRespError     protowire.Number = 4
	loginRespTimestamp protowire.Number = 6
)

func (m *LoginResponse) GetId() string { return strVal(m.Id) }

func unmarshalLoginResponse(data []byte) (*LoginResponse, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &LoginResponse{}
	if v, ok := lastString(fields, loginRespID); ok {
		m.Id = String(v)
	}
	if v, ok := lastVarint(fields, loginRespTimestamp); ok {
		m.ServerTimestamp = Int64(int64(v))
	}
	return m, nil
}

// HeartbeatPing is sent by either side to keep the TLS connection alive.
type HeartbeatPing struct {
	StreamId            *int32
	LastStreamIdReceived *int32
	Status               *int64
}

const (
	heartbeatPingStreamID     protowire.Number = 1
	heartbeatPingLastStreamID protowire.Number = 2
	heartbeatPingStatus       protowire.Number = 3
)

func (m *HeartbeatPing) GetStreamId() int32             { return i32Val(m.StreamId) }
func (m *HeartbeatPing) GetLastStreamIdReceived() int32 { return i32Val(m.LastStreamIdReceived) }

func (m *HeartbeatPing) Marshal() []byte {
	var b []byte
	if m.StreamId != nil {
		b = appendVarintField(b, heartbeatPingStreamID, uint64(*m.StreamId))
	}
	if m.LastStreamIdReceived != nil {
		b = appendVarintField(b, heartbeatPingLastStreamID, uint64(*m.LastStreamIdReceived))
	}
	if m.Status != nil {
		b = appendVarintField(b, heartbeatPingStatus, uint64(*m.Status))
	}
	return b
}

func unmarshalHeartbeatPing(data []byte) (*HeartbeatPing, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &HeartbeatPing{}
	if v, ok := lastVarint(fields, heartbeatPingStreamID); ok {
		m.StreamId = Int32(int32(v))
	}
	if v, ok := lastVarint(fields, heartbeatPingLastStreamID); ok {
		m.LastStreamIdReceived = Int32(int32(v))
	}
	if v, ok := lastVarint(fields, heartbeatPingStatus); ok {
		m.Status = Int64(int64(v))
	}
	return m, nil
}

// HeartbeatAck acknowledges a HeartbeatPing.
type HeartbeatAck struct {
	LastStreamIdReceived *int32
	Status               *int64
}

func NewHeartbeatAck() *HeartbeatAck {
	return &HeartbeatAck{}
}

func (m *HeartbeatAck) Marshal() []byte {
	var b []byte
	if m.LastStreamIdReceived != nil {
		b = appendVarintField(b, heartbeatPingLastStreamID, uint64(*m.LastStreamIdReceived))
	}
	if m.Status != nil {
		b = appendVarintField(b, heartbeatPingStatus, uint64(*m.Status))
	}
	return b
}

func unmarshalHeartbeatAck(data []byte) (*HeartbeatAck, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &HeartbeatAck{}
	if v, ok := lastVarint(fields, heartbeatPingLastStreamID); ok {
		m.LastStreamIdReceived = Int32(int32(v))
	}
	if v, ok := lastVarint(fields, heartbeatPingStatus); ok {
		m.Status = Int64(int64(v))
	}
	return m, nil
}

// Close is sent by the server immediately before it drops the TCP
// connection; the stream treats it as a clean end-of-stream signal.
type Close struct{}

func unmarshalClose(data []byte) (*Close, error) {
	if _, err := parseFields(data); err != nil {
		return nil, err
	}
	return &Close{}, nil
}

// IqStanza carries extension payloads (selective-ack, etc.). Received
// IqStanzas are otherwise opaque to the message stream.
type IqStanza struct {
	Type *int32
	Id   *string
}

const (
	iqType protowire.Number = 2
	iqID   protowire.Number = 3
)

func unmarshalIqStanza(data []byte) (*IqStanza, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &IqStanza{}
	if v, ok := lastVarint(fields, iqType); ok {
		m.Type = Int32(int32(v))
	}
	if v, ok := lastString(fields, iqID); ok {
		m.Id = String(v)
	}
	return m, nil
}

// StreamErrorStanza reports a fatal server-side stream error.
type StreamErrorStanza struct {
	Type *string
	Text *string
	Code *int32
}

const (
	streamErrType protowire.Number = 1
	streamErrText protowire.Number = 2
	streamErrCode protowire.Number = 3
)

func (m *StreamErrorStanza) GetText() string { return strVal(m.Text) }
func (m *StreamErrorStanza) GetCode() int32  { return i32Val(m.Code) }

func unmarshalStreamErrorStanza(data []byte) (*StreamErrorStanza, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &StreamErrorStanza{}
	if v, ok := lastString(fields, streamErrType); ok {
		m.Type = String(v)
	}
	if v, ok := lastString(fields, streamErrText); ok {
		m.Text = String(v)
	}
	if v, ok := lastVarint(fields, streamErrCode); ok {
		m.Code = Int32(int32(v))
	}
	return m, nil
}

// AppData is a single key/value pair carried inside a DataMessageStanza,
// e.g. {crypto-key, dh=...} or {encryption, salt=...}.
type AppData struct {
	Key   *string
	Value *string
}

const (
	appDataKey   protowire.Number = 1
	appDataValue protowire.Number = 2
)

func (m *AppData) GetKey() string   { return strVal(m.Key) }
func (m *AppData) GetValue() string { return strVal(m.Value) }

func unmarshalAppData(data []byte) (*AppData, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &AppData{}
	if v, ok := lastString(fields, appDataKey); ok {
		m.Key = String(v)
	}
	if v, ok := lastString(fields, appDataValue); ok {
		m.Value = String(v)
	}
	return m, nil
}

// DataMessageStanza is a push notification delivered over MCS: the
// envelope around the (possibly web-push-encrypted) payload.
type DataMessageStanza struct {
	From         *string
	Category     *string
	PersistentId *string
	AppData      []*AppData
	RawData      []byte
	Ttl          *int32
	Sent         *int64
}

const (
	dataMsgFrom         protowire.Number = 2
	dataMsgCategory     protowire.Number = 3
	dataMsgRawData      protowire.Number = 6
	dataMsgAppData      protowire.Number = 7
	dataMsgTTL          protowire.Number = 10
	dataMsgSent         protowire.Number = 11
	dataMsgPersistentID protowire.Number = 16
)

func (m *DataMessageStanza) GetFrom() string { return strVal(m.From) }
func (m *DataMessageStanza) GetCategory() string { return strVal(m.Category) }
func (m *DataMessageStanza) GetPersistentId() string { return strVal(m.PersistentId) }
func (m *DataMessageStanza) GetRawData() []byte { return m.RawData }

func unmarshalDataMessageStanza(data []byte) (*DataMessageStanza, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &DataMessageStanza{}
	if v, ok := lastString(fields, dataMsgFrom); ok {
		m.From = String(v)
	}
	if v, ok := lastString(fields, dataMsgCategory); ok {
		m.Category = String(v)
	}
	if v, ok := lastString(fields, dataMsgPersistentID); ok {
		m.PersistentId = String(v)
	}
	if v, ok := lastBytes(fields, dataMsgRawData); ok {
		m.RawData = v
	}
	if v, ok := lastVarint(fields, dataMsgTTL); ok {
		m.Ttl = Int32(int32(v))
	}
	if v, ok := lastVarint(fields, dataMsgSent); ok {
		m.Sent = Int64(int64(v))
	}
	for _, raw := range repeatedBytes(fields, dataMsgAppData) {
		kv, err := unmarshalAppData(raw)
		if err != nil {
			return nil, err
		}
		m.AppData = append(m.AppData, kv)
	}
	return m, nil
}

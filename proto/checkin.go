package proto

import "google.golang.org/protobuf/encoding/protowire"

// DeviceType mirrors AndroidCheckinProto's device_type enum.
type DeviceType int32

const (
	DeviceChromeBrowser DeviceType = 3
)

// ChromeBuildProtoPlatform mirrors ChromeBuildProto's platform enum.
type ChromeBuildProtoPlatform int32

const (
	PlatformWin     ChromeBuildProtoPlatform = 1
	PlatformLinux   ChromeBuildProtoPlatform = 2
	PlatformMac     ChromeBuildProtoPlatform = 3
	PlatformCros    ChromeBuildProtoPlatform = 4
	PlatformIOS     ChromeBuildProtoPlatform = 5
	PlatformAndroid ChromeBuildProtoPlatform = 6
)

// ChromeBuildProtoChannel mirrors ChromeBuildProto's channel enum.
type ChromeBuildProtoChannel int32

const (
	ChannelStable  ChromeBuildProtoChannel = 1
	ChannelBeta    ChromeBuildProtoChannel = 2
	ChannelDev     ChromeBuildProtoChannel = 3
	ChannelCanary  ChromeBuildProtoChannel = 4
	ChannelUnknown ChromeBuildProtoChannel = 5
)

// ChromeBuildProto describes the impersonated Chrome build.
type ChromeBuildProto struct {
	Platform      *int32
	ChromeVersion *string
	Channel       *int32
}

const (
	chromeBuildPlatform      protowire.Number = 1
	chromeBuildVersion       protowire.Number = 2
	chromeBuildChannel       protowire.Number = 3
)

func (m *ChromeBuildProto) GetPlatform() int32 { return i32Val(m.Platform) }
func (m *ChromeBuildProto) GetChromeVersion() string { return strVal(m.ChromeVersion) }
func (m *ChromeBuildProto) GetChannel() int32 { return i32Val(m.Channel) }

func (m *ChromeBuildProto) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	if m.Platform != nil {
		b = appendVarintField(b, chromeBuildPlatform, uint64(*m.Platform))
	}
	if m.ChromeVersion != nil {
		b = appendStringField(b, chromeBuildVersion, *m.ChromeVersion)
	}
	if m.Channel != nil {
		b = appendVarintField(b, chromeBuildChannel, uint64(*m.Channel))
	}
	return b
}

func unmarshalChromeBuildProto(data []byte) (*ChromeBuildProto, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &ChromeBuildProto{}
	if v, ok := lastVarint(fields, chromeBuildPlatform); ok {
		m.Platform = Int32(int32(v))
	}
	if v, ok := lastString(fields, chromeBuildVersion); ok {
		m.ChromeVersion = String(v)
	}
	if v, ok := lastVarint(fields, chromeBuildChannel); ok {
		m.Channel = Int32(int32(v))
	}
	return m, nil
}

// AndroidCheckinProto is the inner checkin descriptor naming the
// impersonated device type and Chrome build.
type AndroidCheckinProto struct {
	Type        *int32
	ChromeBuild *ChromeBuildProto
}

const (
	androidCheckinType  protowire.Number = 13
	androidCheckinBuild protowire.Number = 12
)

func (m *AndroidCheckinProto) GetType() int32 { return i32Val(m.Type) }
func (m *AndroidCheckinProto) GetChromeBuild() *ChromeBuildProto { return m.ChromeBuild }

func (m *AndroidCheckinProto) Marshal() []byte {
	if m == nil {
		return nil
	}
	var b []byte
	if m.ChromeBuild != nil {
		b = appendMessageField(b, androidCheckinBuild, m.ChromeBuild.Marshal())
	}
	if m.Type != nil {
		b = appendVarintField(b, androidCheckinType, uint64(*m.Type))
	}
	return b
}

func unmarshalAndroidCheckinProto(data []byte) (*AndroidCheckinProto, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &AndroidCheckinProto{}
	if v, ok := lastVarint(fields, androidCheckinType); ok {
		m.Type = Int32(int32(v))
	}
	if raw, ok := lastBytes(fields, androidCheckinBuild); ok {
		build, err := unmarshalChromeBuildProto(raw)
		if err != nil {
			return nil, err
		}
		m.ChromeBuild = build
	}
	return m, nil
}

// AndroidCheckinRequest is sent to android.clients.google.com/checkin.
// Id and SecurityToken are nil on the initial anonymous check-in and
// populated on every subsequent refresh.
type AndroidCheckinRequest struct {
	Id               *int64
	SecurityToken    *uint64
	Version          *int32
	UserSerialNumber *int32
	Checkin          *AndroidCheckinProto
}

const (
	checkinReqID               protowire.Number = 7
	checkinReqSecurityToken    protowire.Number = 22
	checkinReqVersion          protowire.Number = 14
	checkinReqUserSerialNumber protowire.Number = 25
	checkinReqCheckin          protowire.Number = 4
)

func (m *AndroidCheckinRequest) GetId() int64 { return i64Val(m.Id) }
func (m *AndroidCheckinRequest) GetSecurityToken() uint64 { return u64Val(m.SecurityToken) }

func (m *AndroidCheckinRequest) Marshal() ([]byte, error) {
	var b []byte
	if m.Checkin != nil {
		b = appendMessageField(b, checkinReqCheckin, m.Checkin.Marshal())
	}
	if m.Id != nil {
		b = appendVarintField(b, checkinReqID, uint64(*m.Id))
	}
	if m.Version != nil {
		b = appendVarintField(b, checkinReqVersion, uint64(*m.Version))
	}
	if m.SecurityToken != nil {
		b = appendVarintField(b, checkinReqSecurityToken, *m.SecurityToken)
	}
	if m.UserSerialNumber != nil {
		b = appendVarintField(b, checkinReqUserSerialNumber, uint64(*m.UserSerialNumber))
	}
	return b, nil
}

// AndroidCheckinResponse carries the assigned android_id/security_token.
type AndroidCheckinResponse struct {
	StatsOk       *bool
	AndroidId     *uint64
	SecurityToken *uint64
}

const (
	checkinRespStatsOk       protowire.Number = 2
	checkinRespAndroidID     protowire.Number = 7
	checkinRespSecurityToken protowire.Number = 8
)

func (m *AndroidCheckinResponse) GetAndroidId() uint64 { return u64Val(m.AndroidId) }
func (m *AndroidCheckinResponse) GetSecurityToken() uint64 { return u64Val(m.SecurityToken) }
func (m *AndroidCheckinResponse) GetStatsOk() bool { return boolVal(m.StatsOk) }

func UnmarshalAndroidCheckinResponse(data []byte) (*AndroidCheckinResponse, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	m := &AndroidCheckinResponse{}
	if v, ok := lastVarint(fields, checkinRespStatsOk); ok {
		m.StatsOk = Bool(v != 0)
	}
	if v, ok := lastVarint(fields, checkinRespAndroidID); ok {
		m.AndroidId = Uint64(v)
	}
	if v, ok := lastVarint(fields, checkinRespSecurityToken); ok {
		m.SecurityToken = Uint64(v)
	}
	return m, nil
}

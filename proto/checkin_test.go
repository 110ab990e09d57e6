package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndroidCheckinRequest_MarshalRoundTrips(t *testing.T) {
	req := &AndroidCheckinRequest{
		Id:               Int64(123456789),
		SecurityToken:    Uint64(987654321),
		Version:          Int32(3),
		UserSerialNumber: Int32(0),
		Checkin: &AndroidCheckinProto{
			Type: Int32(int32(DeviceChromeBrowser)),
			ChromeBuild: &ChromeBuildProto{
				Platform:      Int32(int32(PlatformLinux)),
				ChromeVersion: String("63.0.3234.0"),
				Channel:       Int32(int32(ChannelStable)),
			},
		},
	}

	body, err := req.Marshal()
	require.NoError(t, err)
	require.NotEmpty(t, body)

	fields, err := parseFields(body)
	require.NoError(t, err)

	build, ok := lastBytes(fields, checkinReqCheckin)
	require.True(t, ok)
	checkin, err := unmarshalAndroidCheckinProto(build)
	require.NoError(t, err)
	assert.Equal(t, int32(DeviceChromeBrowser), checkin.GetType())
	assert.Equal(t, int32(PlatformLinux), checkin.GetChromeBuild().GetPlatform())
	assert.Equal(t, "63.0.3234.0", checkin.GetChromeBuild().GetChromeVersion())
	assert.Equal(t, int32(ChannelStable), checkin.GetChromeBuild().GetChannel())
}

func TestAndroidCheckinRequest_OmitsAbsentIDOnInitialCheckin(t *testing.T) {
	req := &AndroidCheckinRequest{
		Version:          Int32(3),
		UserSerialNumber: Int32(0),
		Checkin:          &AndroidCheckinProto{Type: Int32(int32(DeviceChromeBrowser))},
	}
	body, err := req.Marshal()
	require.NoError(t, err)

	fields, err := parseFields(body)
	require.NoError(t, err)
	_, ok := lastVarint(fields, checkinReqID)
	assert.False(t, ok)
	_, ok = lastVarint(fields, checkinReqSecurityToken)
	assert.False(t, ok)
}

func TestUnmarshalAndroidCheckinResponse(t *testing.T) {
	src := &AndroidCheckinResponse{
		StatsOk:       Bool(true),
		AndroidId:     Uint64(42),
		SecurityToken: Uint64(99),
	}
	var b []byte
	b = appendVarintField(b, checkinRespStatsOk, 1)
	b = appendVarintField(b, checkinRespAndroidID, src.GetAndroidId())
	b = appendVarintField(b, checkinRespSecurityToken, src.GetSecurityToken())

	resp, err := UnmarshalAndroidCheckinResponse(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), resp.GetAndroidId())
	assert.Equal(t, uint64(99), resp.GetSecurityToken())
	assert.True(t, resp.GetStatsOk())
}

func TestUnmarshalAndroidCheckinResponse_MalformedFails(t *testing.T) {
	_, err := UnmarshalAndroidCheckinResponse([]byte{0xFF})
	assert.Error(t, err)
}

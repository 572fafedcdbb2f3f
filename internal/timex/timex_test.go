package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"3s"`, want: 3 * time.Second},
		{name: "minutes", in: `"720h"`, want: 720 * time.Hour},
		{name: "nanoseconds", in: `1000`, want: 1000},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bad type", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	type holder struct {
		D *Date `json:"d,omitempty"`
	}

	d := NewDate(2025, time.March, 9)
	b, err := json.Marshal(holder{D: &d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-03-09"}`, string(b))

	var back holder
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.D)
	assert.Equal(t, d, *back.D)
}

func TestParseDate_AcceptsTimestamps(t *testing.T) {
	d, err := ParseDate("2024-12-31T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())

	_, err = ParseDate("31.12.2024")
	require.Error(t, err)
}

func TestDate_EmptyStringIsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestDate_TimeIsUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	d := DateOf(time.Date(2025, 1, 2, 23, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2025-01-12", d.AddDays(10).String())
}

func TestClocks(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, FixedClock{At: at}.Now())
	assert.Equal(t, at, ClockFunc(func() time.Time { return at }).Now())
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}

package meta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListOptionsQueryParams(t *testing.T) {
	require.Equal(
		t,
		map[string]interface{}{"page": 0, "size": DefaultPageSize},
		ListOptions{}.QueryParams(),
	)
	require.Equal(
		t,
		map[string]interface{}{"page": 3, "size": 20},
		ListOptions{Page: 3, Size: 20}.QueryParams(),
	)
}

func TestEnvelopeUnmarshal(t *testing.T) {
	obj := struct {
		ID int `json:"id"`
	}{}
	envelope := Envelope{Data: &obj}
	err := json.Unmarshal(
		[]byte(`{"message":"ok","data":{"id":42}}`),
		&envelope,
	)
	require.NoError(t, err)
	require.Equal(t, "ok", envelope.Message)
	require.Equal(t, 42, obj.ID)
}

func TestTimestampUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name       string
		json       string
		assertions func(t *testing.T, ts Timestamp, err error)
	}{
		{
			name: "local date-time",
			json: `"2025-03-01T12:30:00"`,
			assertions: func(t *testing.T, ts Timestamp, err error) {
				require.NoError(t, err)
				require.Equal(t, 2025, ts.Year())
				require.Equal(t, 30, ts.Minute())
			},
		},
		{
			name: "RFC 3339",
			json: `"2025-03-01T12:30:00Z"`,
			assertions: func(t *testing.T, ts Timestamp, err error) {
				require.NoError(t, err)
				require.Equal(t, 12, ts.UTC().Hour())
			},
		},
		{
			name: "null",
			json: `null`,
			assertions: func(t *testing.T, ts Timestamp, err error) {
				require.NoError(t, err)
				require.True(t, ts.IsZero())
			},
		},
		{
			name: "garbage",
			json: `"yesterday"`,
			assertions: func(t *testing.T, ts Timestamp, err error) {
				require.Error(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ts := Timestamp{}
			err := json.Unmarshal([]byte(testCase.json), &ts)
			testCase.assertions(t, ts, err)
		})
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        Config
		assertions func(*testing.T, string)
	}{
		{
			name: "json at debug",
			cfg:  Config{Level: "debug", Encoding: "json"},
			assertions: func(t *testing.T, out string) {
				lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
				require.Len(t, lines, 2)
				entry := map[string]interface{}{}
				require.NoError(t, json.Unmarshal(lines[0], &entry))
				require.Equal(t, "debug", entry["level"])
				require.Equal(t, "hello", entry["msg"])
				require.Equal(t, "world", entry["who"])
				require.Contains(t, entry, "timestamp")
			},
		},
		{
			name: "console at info drops debug",
			cfg:  Config{Level: "info", Encoding: "console"},
			assertions: func(t *testing.T, out string) {
				require.NotContains(t, out, "hello")
				require.Contains(t, out, "INFO")
				require.Contains(t, out, "goodbye")
			},
		},
		{
			name: "bogus level falls back to info",
			cfg:  Config{Level: "chatty"},
			assertions: func(t *testing.T, out string) {
				require.NotContains(t, out, "hello")
				require.Contains(t, out, "goodbye")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithWriter(testCase.cfg, buf)
			logger.Sugar().Debugw("hello", "who", "world")
			logger.Sugar().Infow("goodbye", "who", "world")
			require.NoError(t, logger.Sync())
			testCase.assertions(t, buf.String())
		})
	}
}

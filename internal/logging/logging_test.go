package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"ERROR", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(tt.level, &buf)
			require.NoError(t, err)

			log.Debug("debug line")
			log.Info("info line", zap.String("profile", "rsi_14"))

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info line")))
			if tt.infoSeen {
				assert.Contains(t, buf.String(), `"profile": "rsi_14"`)
			}
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := New("loud", nil)
	assert.Error(t, err)
}

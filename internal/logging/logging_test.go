package logging

import (
	"bytes"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Lvl
	}{
		{"debug", log.DEBUG},
		{"INFO", log.INFO},
		{"", log.INFO},
		{" warn ", log.WARN},
		{"error", log.ERROR},
		{"off", log.OFF},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("trivia", "warn", &buf)
	require.NoError(t, err)

	logger.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Warnf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), `"prefix":"trivia"`)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.Equal(t, log.OFF, logger.Level())
	logger.Errorf("nothing %s", "happens")
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "clubhub"})
	t.Cleanup(func() { Configure(Config{Level: "info", Pretty: true}) })

	lgr := Component("club_service")
	lgr.Info().Int64("clubID", 4).Msg("Club approved")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "clubhub", line["service"])
	assert.Equal(t, "club_service", line["component"])
	assert.Equal(t, float64(4), line["clubID"])
	assert.Equal(t, "Club approved", line["message"])
}

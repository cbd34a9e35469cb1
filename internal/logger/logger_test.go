package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerIncludesServiceAndStack(t *testing.T) {
	var buf bytes.Buffer
	log := New("faq-catalog", "debug", &buf)
	log.Error().Stack().Err(errors.New("boom")).Msg("save failed")

	line := strings.TrimSpace(buf.String())
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	assert.Equal(t, "faq-catalog", m["service"])
	assert.Equal(t, "save failed", m["message"])
	assert.Equal(t, "boom", m["error"])
	assert.NotNil(t, m["stack"])
	assert.NotEmpty(t, m["time"])
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New("faq-catalog", "warn", &buf)
	log.Debug().Msg("hidden")
	log.Info().Msg("hidden too")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("loud"))
}

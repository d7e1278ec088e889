package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("info", FormatJSON, buf)
	require.NoError(t, err)

	log.Info().Str("input", "ledger.csv").Int("records", 5).Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "loaded", line["message"])
	assert.Equal(t, "ledger.csv", line["input"])
	assert.EqualValues(t, 5, line["records"])
	assert.Contains(t, line, "time")
}

func TestNew_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("debug", FormatConsole, buf)
	require.NoError(t, err)

	log.Debug().Str("output", "out.xml").Msg("written")
	out := buf.String()
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "output=out.xml")
}

func TestNew_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("WARN", FormatJSON, buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Warn().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestNew_Errors(t *testing.T) {
	_, err := New("loud", FormatJSON, &bytes.Buffer{})
	assert.EqualError(t, err, `unknown log level "loud"`)

	_, err = New("", FormatJSON, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.EqualError(t, err, `unknown log format "xml"`)
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("info", FormatJSON, buf)
	require.NoError(t, err)
	ctx := WithContext(context.Background(), log)

	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("test")
	assert.NotZero(t, buf.Len())
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

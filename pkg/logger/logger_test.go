package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		isDevelopment bool
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{"production defaults to info json", "", false, logrus.InfoLevel, true},
		{"development defaults to debug text", "", true, logrus.DebugLevel, false},
		{"explicit level", "warn", false, logrus.WarnLevel, true},
		{"case insensitive level", "ERROR", true, logrus.ErrorLevel, false},
		{"invalid level falls back to info", "loud", false, logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FORMAT", "")
			Logger = nil

			log := InitLogger(tt.logLevel, tt.isDevelopment)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())
			assert.Same(t, log, GetLogger())

			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestWithGenerationContext(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	Logger = nil
	InitLogger("info", false)

	var buf bytes.Buffer
	SetOutput(&buf)

	WithGenerationContext("b-1", "IND", "AUS").Info("generated")

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, "b-1", fields["batch_id"])
	assert.Equal(t, "IND", fields["team1"])
	assert.Equal(t, "AUS", fields["team2"])
	assert.Equal(t, "generated", fields["msg"])
}

func TestWithService(t *testing.T) {
	Logger = nil
	InitLogger("info", false)

	var buf bytes.Buffer
	SetOutput(&buf)
	WithService("roster").Warn("dropped")

	assert.Contains(t, buf.String(), `"service":"roster"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() { log.Info("nothing") })
}

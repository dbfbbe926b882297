package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	p := Pointer(42)
	*p++
	assert.Equal(t, 43, *p)
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ZerologLevel(TraceLevel))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(99))
}

func TestGetLogger_WritesComponent(t *testing.T) {
	var buf bytes.Buffer
	InitializeLogger(InfoLevel, &buf)

	logger := GetLogger("test-component")
	logger.Info().Msg("hello")
	logger.Debug().Msg("filtered")

	out := buf.String()
	assert.Contains(t, out, "test-component")
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "filtered")
}

package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizeItinerary(t *testing.T) {
	in := "\r\n\r\nDay 1   \r\nMorning in Shibuya.\r\n\r\n\r\n\r\nDay 2\t\nAsakusa.\n\n\n"
	got := NormalizeItinerary(in)

	assert.Equal(t, "Day 1\nMorning in Shibuya.\n\nDay 2\nAsakusa.", got)
	assert.NotContains(t, got, "\n\n\n")
	assert.NotContains(t, got, "\r")
}

func TestNormalizeItineraryEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeItinerary(" \n\n \r\n"))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$1500", FormatDollars("1500"))
	assert.Equal(t, "$1500", FormatDollars("$1500"))
	assert.Equal(t, "$2500.5", FormatDollars(" 2500.5 "))
}

func TestInclusiveDays(t *testing.T) {
	n, ok := InclusiveDays("2025-04-01", "2025-04-05")
	require.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = InclusiveDays("2025-04-01", "2025-04-01")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = InclusiveDays("2025-04-05", "2025-04-01")
	assert.False(t, ok)

	_, ok = InclusiveDays("next week", "2025-04-01")
	assert.False(t, ok)
}

func TestOrDefaultAndFilename(t *testing.T) {
	assert.Equal(t, "not specified", OrDefault("  ", "not specified"))
	assert.Equal(t, "air", OrDefault(" air ", "not specified"))
	assert.Equal(t, "new-york-usa", SafeFilenamePart("New York, USA"))
	assert.Equal(t, "", SafeFilenamePart("   "))
}

func TestLogFailureRedactsCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	LogFailure("req-1", "ITINERARY", "openai_call", errors.New("status 401"), "authorization", "Bearer sk-secret", "status", 401)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "itinerary", ctx["module"])
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, "[REDACTED]", ctx["authorization"])
	assert.True(t, strings.HasPrefix(entries[0].Message, "openai_call"))
}

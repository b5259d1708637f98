package taint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAny_PseudoHookRecord(t *testing.T) {
	rec := PseudoHookRecord{Sink: "innerHTML", Sources: []string{"location.hash"}, Str: "<img onerror=1>", URL: "https://a.test/x"}
	flow, ok := ParseAny(rec)
	require.True(t, ok)
	assert.Equal(t, "innerHTML", flow.SinkName)
	assert.Equal(t, "https://a.test/x", flow.LocationURL)
}

func TestParseAny_ConsoleLine(t *testing.T) {
	flow, ok := ParseAny("[TAINT] sink=eval source=location.hash value=payload url=https://a.test/")
	require.True(t, ok)
	assert.Equal(t, "eval", flow.SinkName)
	assert.Equal(t, []string{"location.hash"}, flow.SourceNames)
}

func TestParseAny_ConsoleLineRejectsUnmatched(t *testing.T) {
	_, ok := ParseAny("some unrelated console output")
	assert.False(t, ok)
}

func TestParseAny_NativeEvent(t *testing.T) {
	flow, ok := ParseAny(NativeEvent{Sink: "document.write", Sources: []string{"window.name"}})
	require.True(t, ok)
	assert.Equal(t, "document.write", flow.SinkName)
}

func TestParseAny_GenericMap(t *testing.T) {
	raw := map[string]any{
		"sink":    "innerHTML",
		"sources": []any{"location.hash"},
		"str":     "payload",
		"url":     "https://a.test/",
		"line":    float64(42),
	}
	flow, ok := ParseAny(raw)
	require.True(t, ok)
	assert.Equal(t, "innerHTML", flow.SinkName)
	assert.Equal(t, 42, flow.Line)
}

func TestParseAny_Unrecognized(t *testing.T) {
	_, ok := ParseAny(1234)
	assert.False(t, ok)
}

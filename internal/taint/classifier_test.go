package taint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestClassify_CriticalScenario(t *testing.T) {
	flow := model.TaintFlow{
		SinkName:     "innerHTML",
		SourceNames:  []string{"location.hash"},
		TaintedValue: `<img src=x onerror=alert(1)>`,
	}
	conf, sev := Classify(flow)
	assert.InDelta(t, 0.98, conf, 1e-9)
	assert.Equal(t, SeverityCritical, sev)
}

func TestClassify_BaselineMediumSeverity(t *testing.T) {
	flow := model.TaintFlow{SinkName: "appendChild", SourceNames: []string{"someVar"}, TaintedValue: "plain text"}
	conf, sev := Classify(flow)
	assert.InDelta(t, 0.50, conf, 1e-9)
	assert.Equal(t, SeverityMedium, sev)
}

func TestClassify_HighBelowCriticalConfidence(t *testing.T) {
	// setTimeout floors at 0.70 but is JS_EXECUTION, so >=0.85 with that
	// category would be CRITICAL; at exactly 0.70 it's HIGH.
	flow := model.TaintFlow{SinkName: "setTimeout", SourceNames: []string{"x"}, TaintedValue: "plain"}
	conf, sev := Classify(flow)
	assert.InDelta(t, 0.70, conf, 1e-9)
	assert.Equal(t, SeverityHigh, sev)
}

func TestClassifySink_FallbackHeuristic(t *testing.T) {
	assert.Equal(t, SinkURLRedirect, ClassifySink("window.location.assign"))
	assert.Equal(t, SinkUnknown, ClassifySink("totallyUnrecognizedSink"))
}

func TestClassifySource_ValueHeuristic(t *testing.T) {
	assert.Equal(t, SourceURL, ClassifySource("unknownName", "https://evil.example/x"))
	assert.Equal(t, SourceStorage, ClassifySource("unknownName", `{"a":1}`))
	assert.Equal(t, SourceUserInput, ClassifySource("unknownName", "<b>hi</b>"))
	assert.Equal(t, SourceUnknown, ClassifySource("unknownName", "plain"))
}

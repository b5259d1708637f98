package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func detected(conf float64) model.DetectionResult {
	return model.DetectionResult{Detected: true, Confidence: conf}
}

func notDetected() model.DetectionResult {
	return model.DetectionResult{Detected: false}
}

func TestAnalyze_NoSignalsIsNotSPA(t *testing.T) {
	s := Signals{History: notDetected(), Network: notDetected(), DOM: notDetected(), Title: notDetected(), Clickable: notDetected()}
	r := Analyze(s, 0, 0)
	assert.Equal(t, model.VerdictNotSPA, r.Verdict)
}

func TestAnalyze_StrongHardSignalIsDefinite(t *testing.T) {
	s := Signals{
		History:   detected(0.9),
		Network:   detected(0.8),
		DOM:       detected(0.8),
		Title:     detected(0.7),
		Clickable: detected(0.6),
	}
	r := Analyze(s, 6, 1)
	assert.Equal(t, model.VerdictDefinite, r.Verdict)
	assert.Equal(t, 5, r.DetectedCount)
	assert.GreaterOrEqual(t, r.Confidence, 0.60)
	assert.LessOrEqual(t, r.Confidence, 0.98)
}

func TestAnalyze_NoHardSignalCapsConfidence(t *testing.T) {
	s := Signals{
		History:   notDetected(),
		Network:   detected(0.9),
		DOM:       detected(0.9),
		Title:     detected(0.9),
		Clickable: detected(0.9),
	}
	r := Analyze(s, 0, 0)
	assert.False(t, s.History.Detected)
	assert.LessOrEqual(t, r.Confidence, 0.60)
}

func TestAnalyze_AntiSignalPenaltyLowersScore(t *testing.T) {
	withoutPenalty := Signals{History: detected(0.5), Network: notDetected(), DOM: notDetected(), Title: notDetected(), Clickable: notDetected()}
	base := Analyze(withoutPenalty, 2, 0)

	withPenalty := Analyze(withoutPenalty, 2, 10) // f=10, h=2: full penalty 0.25
	assert.LessOrEqual(t, withPenalty.Score, base.Score)
}

func TestAntiSignalPenalty_ClampedAt025(t *testing.T) {
	assert.Equal(t, 0.25, antiSignalPenalty(100, 0))
}

func TestAntiSignalPenalty_NoPenaltyBelowThreeFullDocNavs(t *testing.T) {
	assert.Equal(t, 0.0, antiSignalPenalty(2, 0))
}

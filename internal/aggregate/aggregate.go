// Package aggregate implements the Signal Aggregator (spec §4.6): hard-signal
// gating, weighted scoring, anti-signal penalty, and verdict/confidence
// mapping over the five detector outputs.
package aggregate

import "github.com/ias-lab/pasiphae/internal/model"

const (
	gateMultiplier = 0.35

	weightHistory   = 0.40
	weightNetwork   = 0.20
	weightDOM       = 0.20
	weightTitle     = 0.10
	weightClickable = 0.10
)

// Signals bundles the five detector outputs in a fixed order (spec §4.6
// treats history as distinguished: the hard signal).
type Signals struct {
	History   model.DetectionResult
	Network   model.DetectionResult
	DOM       model.DetectionResult
	Title     model.DetectionResult
	Clickable model.DetectionResult
}

// All returns the five results in detector order, used for counting
// detected signals.
func (s Signals) All() []model.DetectionResult {
	return []model.DetectionResult{s.History, s.Network, s.DOM, s.Title, s.Clickable}
}

func (s Signals) detectedCount() int {
	n := 0
	for _, r := range s.All() {
		if r.Detected {
			n++
		}
	}
	return n
}

// Verdict mirrors model.Verdict but kept local to the scoring tiers below
// (aggregate.Analyze is the single producer of model.RunResult.Verdict).
type Verdict = model.Verdict

// score computes the weighted sum with hard-signal gating, per spec §4.6
// steps 1-2.
func score(s Signals) float64 {
	gate := 1.0
	if !s.History.Detected {
		gate = gateMultiplier
	}

	total := 0.0
	if s.History.Detected {
		total += weightHistory * s.History.Confidence
	}
	if s.Network.Detected {
		total += weightNetwork * s.Network.Confidence * gate
	}
	if s.DOM.Detected {
		total += weightDOM * s.DOM.Confidence * gate
	}
	if s.Title.Detected {
		total += weightTitle * s.Title.Confidence
	}
	if s.Clickable.Detected {
		total += weightClickable * s.Clickable.Confidence
	}
	return total
}

// antiSignalPenalty implements spec §4.6 step 3.
func antiSignalPenalty(fullDocNavs, historyCalls int) float64 {
	f := fullDocNavs
	h := historyCalls
	if f >= 3 && h < f {
		penalty := 0.05 * float64(f-h)
		if penalty > 0.25 {
			penalty = 0.25
		}
		return penalty
	}
	return 0
}

// Result is the aggregator's output: the run's SPA verdict, confidence, and
// the inputs that produced it (kept for RunResult evidence / tests).
type Result struct {
	Verdict       model.Verdict
	Confidence    float64
	Score         float64
	DetectedCount int
}

// Analyze runs the full pipeline (spec §4.6 steps 1-5). historyCalls is
// h = push+replace+pop (needed alongside the History DetectionResult for
// the anti-signal ratio); fullDocNavs is f.
func Analyze(s Signals, historyCalls, fullDocNavs int) Result {
	raw := score(s)
	raw -= antiSignalPenalty(fullDocNavs, historyCalls)
	if raw < 0 {
		raw = 0
	}

	detected := s.detectedCount()
	hardSignal := s.History.Detected

	var verdict model.Verdict
	switch {
	case hardSignal && (detected >= 4 || raw >= 0.60):
		verdict = model.VerdictDefinite
	case hardSignal && detected >= 3 && raw >= 0.45:
		verdict = model.VerdictVeryLikely
	case hardSignal && detected >= 2 && raw >= 0.35:
		verdict = model.VerdictLikely
	case hardSignal:
		verdict = model.VerdictPossible
	case raw >= 0.50 && detected >= 4:
		verdict = model.VerdictPossible
	case raw >= 0.30 && detected >= 3:
		verdict = model.VerdictDynamicPage
	default:
		verdict = model.VerdictNotSPA
	}

	conf := confidenceFor(verdict, raw, hardSignal)

	return Result{Verdict: verdict, Confidence: conf, Score: raw, DetectedCount: detected}
}

// confidenceFor implements spec §4.6 step 5: a per-tier cap with no floor
// and no offset except DEFINITE's explicit +0.10, matching the ground-truth
// decision tree exactly (ties to each verdict's own min(cap, score); no
// floor is ever added). score is already clamped to >=0 by Analyze.
func confidenceFor(v model.Verdict, score float64, hardSignal bool) float64 {
	switch v {
	case model.VerdictDefinite:
		return model.Clamp(score+0.10, 0, 0.98)
	case model.VerdictVeryLikely:
		return model.Clamp(score, 0, 0.90)
	case model.VerdictLikely:
		return model.Clamp(score, 0, 0.80)
	case model.VerdictPossible:
		if hardSignal {
			return model.Clamp(score, 0, 0.65)
		}
		return model.Clamp(score, 0, 0.60)
	default: // VerdictDynamicPage, VerdictNotSPA
		return score
	}
}

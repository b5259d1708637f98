// Package detect implements the five per-signal detectors of spec §4.5:
// deterministic evidence-to-DetectionResult mappings consumed by the
// Signal Aggregator.
package detect

import "github.com/ias-lab/pasiphae/internal/model"

// History analyzes a model.HistoryState.
type History struct {
	State *model.HistoryState
}

// Analyze implements the History detector's thresholds (spec §4.5).
func (d History) Analyze() model.DetectionResult {
	h := d.State.HistoryCalls()
	f := d.State.FullDocNavs

	evidence := map[string]any{
		"push":          d.State.PushCount,
		"replace":       d.State.ReplaceCount,
		"pop":           d.State.PopCount,
		"history_calls": h,
		"full_doc_navs": f,
	}

	if h == 0 {
		if f > 2 {
			return model.DetectionResult{
				SignalName:  "history",
				Detected:    false,
				Confidence:  0,
				Evidence:    evidence,
				Description: "no history API activity against repeated full-document navigations",
			}
		}
		return model.DetectionResult{
			SignalName:  "history",
			Detected:    false,
			Confidence:  0,
			Evidence:    evidence,
			Description: "no history API activity observed",
		}
	}

	var base float64
	switch {
	case h >= 5:
		base = 0.85
	case h >= 3:
		base = 0.70
	default: // 1-2
		base = 0.50
	}

	if f > 0 {
		ratio := float64(h) / float64(f)
		switch {
		case ratio >= 2:
			base += 0.10
		case ratio >= 1:
			// [1,2): no adjustment
		case ratio >= 0.5:
			base -= 0.10
		default:
			base -= 0.20
		}
	}

	conf := model.Clamp(base, 0.2, 0.95)
	return model.DetectionResult{
		SignalName:  "history",
		Detected:    true,
		Confidence:  conf,
		Evidence:    evidence,
		Description: "client-side navigation via the history API",
	}
}

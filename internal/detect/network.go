package detect

import "github.com/ias-lab/pasiphae/internal/model"

// Network analyzes a model.NetworkState.
type Network struct {
	State *model.NetworkState
}

// Analyze implements the Network detector's thresholds (spec §4.5).
func (d Network) Analyze() model.DetectionResult {
	p := len(d.State.PostClick)
	b := len(d.State.Baseline)
	doc := len(d.State.Document)
	j := d.State.JSONCount

	evidence := map[string]any{
		"post_click": p,
		"baseline":   b,
		"document":   doc,
		"json":       j,
	}

	if p < 2 {
		if b >= 20 {
			return model.DetectionResult{
				SignalName:  "network",
				Detected:    false,
				Confidence:  0,
				Evidence:    evidence,
				Description: "baseline-only network activity is not a SPA signal",
			}
		}
		return model.DetectionResult{
			SignalName:  "network",
			Detected:    false,
			Confidence:  0,
			Evidence:    evidence,
			Description: "insufficient post-click API activity",
		}
	}

	var base float64
	switch {
	case p >= 10:
		base = 0.85
	case p >= 5:
		base = 0.70
	default: // 2-4
		base = 0.50
	}

	if j >= 5 {
		base += 0.10
	}
	if doc >= 3 {
		base -= 0.15
	}
	if doc > 0 && float64(p)/float64(doc) >= 5 {
		base += 0.10
	}

	conf := model.Clamp(base, 0, 1)
	return model.DetectionResult{
		SignalName:  "network",
		Detected:    true,
		Confidence:  conf,
		Evidence:    evidence,
		Description: "client-side API activity following interaction",
	}
}

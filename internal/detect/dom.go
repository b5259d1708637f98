package detect

import "github.com/ias-lab/pasiphae/internal/model"

// DOM analyzes a model.DOMState plus the run's click-window count.
type DOM struct {
	State       *model.DOMState
	ClickWindows int
}

// Analyze implements the DOM detector's thresholds (spec §4.5).
func (d DOM) Analyze() model.DetectionResult {
	mp := d.State.PostClickMutations
	np := d.State.PostClickNodeChanges
	mb := d.State.BaselineMutations

	evidence := map[string]any{
		"post_click_mutations":    mp,
		"post_click_node_changes": np,
		"baseline_mutations":      mb,
		"initial_tags":            d.State.InitialTagCount,
		"final_tags":              d.State.FinalTagCount,
		"click_windows":           d.ClickWindows,
	}

	if mp < 5 && np < 10 {
		if mb >= 50 {
			return model.DetectionResult{
				SignalName:  "dom",
				Detected:    false,
				Confidence:  0,
				Evidence:    evidence,
				Description: "mutation activity is confined to the baseline load",
			}
		}
		return model.DetectionResult{
			SignalName:  "dom",
			Detected:    false,
			Confidence:  0,
			Evidence:    evidence,
			Description: "insufficient post-click DOM mutation",
		}
	}

	var base float64
	switch {
	case mp >= 30 && np >= 50:
		base = 0.85
	case mp >= 15 && np >= 30:
		base = 0.70
	default: // mp>=5 or np>=10
		base = 0.50
	}

	if d.State.InitialTagCount > 0 {
		ratio := float64(d.State.FinalTagCount) / float64(d.State.InitialTagCount)
		if ratio >= 1.5 {
			base += 0.10
		}
	}
	if d.ClickWindows >= 3 {
		base += 0.05
	}

	conf := model.Clamp(base, 0, 1)
	return model.DetectionResult{
		SignalName:  "dom",
		Detected:    true,
		Confidence:  conf,
		Evidence:    evidence,
		Description: "DOM mutation observed following interaction",
	}
}

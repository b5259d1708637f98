package detect

import "github.com/ias-lab/pasiphae/internal/model"

// Clickable analyzes a model.ClickableState snapshot.
type Clickable struct {
	State *model.ClickableState
}

// Analyze implements the Clickable detector's thresholds (spec §4.5).
func (d Clickable) Analyze() model.DetectionResult {
	fakeTotal := d.State.FakeClickables + d.State.RouterLinkPatterns

	evidence := map[string]any{
		"real_links":           d.State.RealLinks,
		"fake_clickables":      d.State.FakeClickables,
		"router_link_patterns": d.State.RouterLinkPatterns,
		"fake_total":           fakeTotal,
		"framework_matched":    d.State.FrameworkMatched,
	}

	var (
		detected    bool
		conf        float64
		description string
	)

	switch {
	case d.State.RouterLinkPatterns >= 5:
		detected = true
		conf = 0.80
		description = "strong router-link pattern density"
	case d.State.RealLinks > 0 && float64(fakeTotal)/float64(d.State.RealLinks) >= 0.5 && fakeTotal >= 10:
		detected = true
		ratio := float64(fakeTotal) / float64(d.State.RealLinks)
		conf = model.Clamp(0.55+0.05*ratio, 0.55, 0.85)
		description = "fake-clickable surface dominates real navigable links"
	case fakeTotal >= 5:
		detected = true
		conf = 0.40
		description = "some fake-clickable / router-link patterns present"
	default:
		detected = false
		description = "clickable surface looks conventional"
	}

	if detected && d.State.FrameworkMatched {
		conf = model.Clamp(conf+0.10, 0, 1)
	}

	return model.DetectionResult{
		SignalName:  "clickable",
		Detected:    detected,
		Confidence:  conf,
		Evidence:    evidence,
		Description: description,
	}
}

package detect

import "github.com/ias-lab/pasiphae/internal/model"

// Title analyzes a model.TitleState.
type Title struct {
	State *model.TitleState
}

// Analyze implements the Title detector's thresholds (spec §4.5).
func (d Title) Analyze() model.DetectionResult {
	distinct := d.State.DistinctTitleCount()
	changes := distinct - 1
	if changes < 0 {
		changes = 0
	}

	evidence := map[string]any{
		"distinct_titles": distinct,
		"title_changes":   changes,
	}

	if distinct < 2 {
		return model.DetectionResult{
			SignalName:  "title",
			Detected:    false,
			Confidence:  0,
			Evidence:    evidence,
			Description: "title never changed",
		}
	}

	var conf float64
	switch {
	case changes >= 3:
		conf = 0.9
	case changes == 2:
		conf = 0.6
	default: // 1
		conf = 0.4
	}

	return model.DetectionResult{
		SignalName:  "title",
		Detected:    true,
		Confidence:  conf,
		Evidence:    evidence,
		Description: "document title changed without full-document navigation",
	}
}

package model

// Verdict is the final SPA classification tier.
type Verdict string

const (
	VerdictDefinite    Verdict = "DEFINITE"
	VerdictVeryLikely  Verdict = "VERY LIKELY"
	VerdictLikely      Verdict = "LIKELY"
	VerdictPossible    Verdict = "POSSIBLE"
	VerdictDynamicPage Verdict = "DYNAMIC-PAGE" // not SPA
	VerdictNotSPA      Verdict = "NOT-SPA"
)

// IsSPA reports whether v counts as "SPA detected" for exit-code purposes
// (spec §6): every tier except DYNAMIC-PAGE and NOT-SPA.
func (v Verdict) IsSPA() bool {
	return v == VerdictDefinite || v == VerdictVeryLikely || v == VerdictLikely || v == VerdictPossible
}

// TagCounts is a snapshot of element tag counts at a point in the run.
type TagCounts struct {
	Initial int
	Final   int
	Max     int
}

// ActionCounters tallies what the interaction strategy actually did.
type ActionCounters struct {
	ActionsPerformed int
	InputsFilled     int
	PayloadsInjected int
}

// RunResult is the Run Coordinator's output envelope for one URL.
type RunResult struct {
	URL                      string
	Strategy                 string
	Verdict                  Verdict
	Confidence               float64
	Detections               []DetectionResult
	TaintFlows               []TaintFlow
	Findings                 []Finding
	Counters                 ActionCounters
	Tags                     TagCounts
	ClickWindowRequestCounts map[string]int
	Errors                   []error
}

// CoverageEntry is one script's byte coverage from the dual-mode runner's
// coverage pass.
type CoverageEntry struct {
	ScriptURL  string
	TotalBytes int
	UsedBytes  int
}

// CoverageResult is the dual-mode runner's coverage-pass output.
type CoverageResult struct {
	URL     string
	Entries []CoverageEntry
}

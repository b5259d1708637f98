package model

// CandidateKind classifies the interactive role of an ActionCandidate.
type CandidateKind string

const (
	KindInput   CandidateKind = "input"
	KindButton  CandidateKind = "button"
	KindLink    CandidateKind = "link"
	KindOnclick CandidateKind = "onclick"
	KindSelect  CandidateKind = "select"
	KindUnknown CandidateKind = "unknown"
)

// Rect is a bounding rectangle in viewport coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ActionCandidate is a visible, interactable, same-origin element discovered
// during one traversal round. Candidates are ephemeral: a new round produces
// a fresh slice, and equality across rounds is selector-based (see Equal).
type ActionCandidate struct {
	Selector    string
	Kind        CandidateKind
	Label       string
	InputType   string
	Href        string
	HasOnclick  bool
	Rect        Rect
}

// ID is the cross-round identity of a candidate: selector+kind uniquely
// identify a candidate within one round, and across rounds equality is
// selector-based, so the ID is the selector itself.
func (c ActionCandidate) ID() string {
	return c.Selector
}

// Equal reports whether two candidates refer to the same element across
// rounds, per the selector-based cross-round equality invariant.
func (c ActionCandidate) Equal(other ActionCandidate) bool {
	return c.Selector == other.Selector
}

// TruncateLabel bounds a label to maxLen runes, matching the discovery
// contract that textual labels are truncated.
func TruncateLabel(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}

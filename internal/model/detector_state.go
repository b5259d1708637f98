package model

import "time"

// HistoryChange records one pushState/replaceState/popstate invocation.
type HistoryChange struct {
	Kind     string // "pushState", "replaceState", "popstate"
	NewURL   string
	FromURL  string
	Time     time.Time
}

// HistoryState accumulates evidence for the History detector.
type HistoryState struct {
	PushCount    int
	ReplaceCount int
	PopCount     int
	Changes      []HistoryChange
	FullDocNavs  int
}

const maxHistoryChangeLog = 200

// RecordChange appends a change to the bounded log and bumps the matching counter.
func (s *HistoryState) RecordChange(kind, newURL, fromURL string, at time.Time) {
	switch kind {
	case "pushState":
		s.PushCount++
	case "replaceState":
		s.ReplaceCount++
	case "popstate":
		s.PopCount++
	}
	s.Changes = append(s.Changes, HistoryChange{Kind: kind, NewURL: newURL, FromURL: fromURL, Time: at})
	if len(s.Changes) > maxHistoryChangeLog {
		s.Changes = s.Changes[len(s.Changes)-maxHistoryChangeLog:]
	}
}

// RecordFullDocumentNavigation bumps the full-document navigation counter,
// consumed later as an anti-signal.
func (s *HistoryState) RecordFullDocumentNavigation() {
	s.FullDocNavs++
}

// HistoryCalls is h = push + replace + popstate (spec §4.5).
func (s *HistoryState) HistoryCalls() int {
	return s.PushCount + s.ReplaceCount + s.PopCount
}

// NetworkRequest is one observed request attributed to a phase.
type NetworkRequest struct {
	URL          string
	Method       string
	ResourceKind string
	Time         time.Time
	JSONResponse bool
}

// NetworkPhase is the measurement bucket a request is attributed to.
type NetworkPhase int

const (
	PhaseBaseline NetworkPhase = iota
	PhasePostClick
	PhaseDocument
)

// NetworkState accumulates evidence for the Network detector, partitioned
// into baseline/post-click/document sub-aggregates.
type NetworkState struct {
	Baseline  []NetworkRequest
	PostClick []NetworkRequest
	Document  []NetworkRequest
	JSONCount int
}

// Record attributes a request to the given phase unless it matches the
// ignore-list, in which case it contributes nothing (spec §3 DetectorState.Network).
func (s *NetworkState) Record(req NetworkRequest, phase NetworkPhase, ignored bool) {
	if ignored {
		return
	}
	switch phase {
	case PhaseBaseline:
		s.Baseline = append(s.Baseline, req)
	case PhasePostClick:
		s.PostClick = append(s.PostClick, req)
	case PhaseDocument:
		s.Document = append(s.Document, req)
	}
	if req.JSONResponse {
		s.JSONCount++
	}
}

// MutationSample is a bounded sample of a "large" DOM mutation (>=5 nodes changed).
type MutationSample struct {
	Added   int
	Removed int
	Phase   string // "baseline" or "post-click"
	Time    time.Time
}

const maxMutationSamples = 30

// DOMState accumulates evidence for the DOM detector, partitioned baseline
// vs post-click.
type DOMState struct {
	BaselineMutations   int
	BaselineNodeChanges int
	PostClickMutations  int
	PostClickNodeChanges int
	LargeMutations      []MutationSample
	InitialTagCount     int
	FinalTagCount       int
}

// RecordMutation attributes a surviving mutation to the baseline or
// post-click bucket and samples it if it's "large" (added+removed >= 5).
func (s *DOMState) RecordMutation(added, removed int, baseline bool, at time.Time) {
	changed := added + removed
	if baseline {
		s.BaselineMutations++
		s.BaselineNodeChanges += changed
	} else {
		s.PostClickMutations++
		s.PostClickNodeChanges += changed
	}
	if changed >= 5 && len(s.LargeMutations) < maxMutationSamples {
		phase := "post-click"
		if baseline {
			phase = "baseline"
		}
		s.LargeMutations = append(s.LargeMutations, MutationSample{Added: added, Removed: removed, Phase: phase, Time: at})
	}
}

// TitleEntry is one distinct (title, url, timestamp) observation.
type TitleEntry struct {
	Title string
	URL   string
	Time  time.Time
}

// TitleState accumulates the ordered list of distinct titles seen, cumulative
// across navigations.
type TitleState struct {
	Entries []TitleEntry
}

// RecordIfChanged appends entry only if it differs from the last recorded title.
func (s *TitleState) RecordIfChanged(title, url string, at time.Time) bool {
	if len(s.Entries) > 0 && s.Entries[len(s.Entries)-1].Title == title {
		return false
	}
	s.Entries = append(s.Entries, TitleEntry{Title: title, URL: url, Time: at})
	return true
}

// DistinctTitleCount returns the number of distinct titles observed.
func (s *TitleState) DistinctTitleCount() int {
	seen := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		seen[e.Title] = struct{}{}
	}
	return len(seen)
}

// ClickableState is a snapshot of link/fake-clickable/router-link/framework
// fingerprint counts, taken once per discovery round.
type ClickableState struct {
	RealLinks          int
	FakeClickables     int
	RouterLinkPatterns int
	FrameworkMatched   bool
}

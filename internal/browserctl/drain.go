package browserctl

import (
	"encoding/json"
	"time"

	"github.com/ias-lab/pasiphae/internal/model"
)

// drainSnapshot mirrors the in-page window.__analysis namespace shape for
// the three mutation-observer/wrapper-backed hooks (history, title, dom).
// Each field here is the page's own cumulative bookkeeping, so draining is a
// snapshot-replace rather than an incremental replay.
type drainSnapshot struct {
	History struct {
		Counts  map[string]int `json:"counts"`
		Changes []struct {
			Kind    string  `json:"kind"`
			NewURL  string  `json:"newURL"`
			FromURL string  `json:"fromURL"`
			TS      float64 `json:"ts"`
		} `json:"changes"`
	} `json:"history"`
	Title struct {
		Entries []struct {
			Title string  `json:"title"`
			URL   string  `json:"url"`
			TS    float64 `json:"ts"`
		} `json:"entries"`
	} `json:"title"`
	DOM struct {
		BaselineMutations    int `json:"baselineMutations"`
		BaselineNodeChanges  int `json:"baselineNodeChanges"`
		PostClickMutations   int `json:"postClickMutations"`
		PostClickNodeChanges int `json:"postClickNodeChanges"`
		InitialTagCount      int `json:"initialTagCount"`
		FinalTagCount        int `json:"finalTagCount"`
		LargeMutations       []struct {
			Added   int     `json:"added"`
			Removed int     `json:"removed"`
			Phase   string  `json:"phase"`
			TS      float64 `json:"ts"`
		} `json:"largeMutations"`
	} `json:"dom"`
}

const drainScript = `() => JSON.stringify({
    history: window.__analysis.history,
    title: window.__analysis.title,
    dom: window.__analysis.dom,
})`

// drainMutationQueue pulls the page-side history/title/dom accumulators back
// into the Go-side detector state. It is a snapshot-replace, safe to call
// repeatedly (e.g. once per closed click window): the page already carries
// the authoritative cumulative counts, so there is nothing to dedup.
func (r *Run) drainMutationQueue() {
	res, err := r.ctx.Page.Eval(drainScript)
	if err != nil {
		return
	}
	var snap drainSnapshot
	if err := json.Unmarshal([]byte(res.Value.String()), &snap); err != nil {
		return
	}

	r.History.PushCount = snap.History.Counts["pushState"]
	r.History.ReplaceCount = snap.History.Counts["replaceState"]
	r.History.PopCount = snap.History.Counts["popstate"]
	r.History.Changes = r.History.Changes[:0]
	for _, c := range snap.History.Changes {
		r.History.Changes = append(r.History.Changes, model.HistoryChange{
			Kind: c.Kind, NewURL: c.NewURL, FromURL: c.FromURL, Time: msToTime(c.TS),
		})
	}

	r.Title.Entries = r.Title.Entries[:0]
	for _, e := range snap.Title.Entries {
		r.Title.Entries = append(r.Title.Entries, model.TitleEntry{
			Title: e.Title, URL: e.URL, Time: msToTime(e.TS),
		})
	}

	r.DOM.BaselineMutations = snap.DOM.BaselineMutations
	r.DOM.BaselineNodeChanges = snap.DOM.BaselineNodeChanges
	r.DOM.PostClickMutations = snap.DOM.PostClickMutations
	r.DOM.PostClickNodeChanges = snap.DOM.PostClickNodeChanges
	r.DOM.InitialTagCount = snap.DOM.InitialTagCount
	r.DOM.FinalTagCount = snap.DOM.FinalTagCount
	r.DOM.LargeMutations = r.DOM.LargeMutations[:0]
	for _, m := range snap.DOM.LargeMutations {
		r.DOM.LargeMutations = append(r.DOM.LargeMutations, model.MutationSample{
			Added: m.Added, Removed: m.Removed, Phase: m.Phase, Time: msToTime(m.TS),
		})
	}
}

func msToTime(ms float64) time.Time {
	return time.UnixMilli(int64(ms))
}

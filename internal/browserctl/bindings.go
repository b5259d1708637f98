package browserctl

import (
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/taint"
)

// Run ties one Context to the accumulating detector state and taint buffer
// for one URL's analysis (spec §3 Ownership: "a single run owns exactly one
// browser context, one detector set, ...").
type Run struct {
	ctx *Context

	History   model.HistoryState
	Network   model.NetworkState
	DOM       model.DOMState
	Title     model.TitleState
	Clickable model.ClickableState

	Windows model.ClickWindowTracker
	Taint   *taint.Buffer

	baselineEnd         time.Time
	windowRequestCounts map[string]int
}

// NewRun wires detector state and the report_taint host binding onto ctx.
// Must be called before the first navigation (the binding has to exist
// before page script can call it, mirroring the init-script ordering
// invariant).
func NewRun(ctx *Context, baselineDuration time.Duration) (*Run, error) {
	r := &Run{ctx: ctx, Taint: taint.NewBuffer(), windowRequestCounts: make(map[string]int)}

	if _, err := ctx.Page.Expose("report_taint", func(j gson.JSON) (interface{}, error) {
		var rec taint.PseudoHookRecord
		if err := j.Unmarshal(&rec); err == nil {
			r.Taint.AddFlow(rec.ToFlow())
		}
		return nil, nil
	}); err != nil {
		return nil, &model.ContextDeadError{Detail: "expose report_taint: " + err.Error()}
	}

	r.subscribeConsole()
	r.subscribeFrameNavigated()

	return r, nil
}

// StartBaseline marks the wall-clock moment the baseline phase begins
// (script injection / first navigation), after which DOM/Network records
// are attributed to baseline vs post-click by comparing against
// baselineEnd.
func (r *Run) StartBaseline(at time.Time, duration time.Duration) {
	r.baselineEnd = at.Add(duration)
}

func (r *Run) inBaseline(t time.Time) bool {
	return t.Before(r.baselineEnd)
}

// subscribeConsole drains [TAINT] console lines (the fallback path when the
// pseudo-hook queue-poll isn't used) and feeds them to the taint buffer.
func (r *Run) subscribeConsole() {
	go r.ctx.Page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) (stop bool) {
		for _, arg := range e.Args {
			line := arg.Value.String()
			if flow, ok := taint.ParseConsoleLine(line); ok {
				r.Taint.AddFlow(flow)
			}
		}
		return false
	})()
}

// subscribeFrameNavigated increments the full-document-navigation counter
// consumed later as an anti-signal (spec §4.1).
func (r *Run) subscribeFrameNavigated() {
	go r.ctx.Page.EachEvent(func(e *proto.PageFrameNavigated) (stop bool) {
		if e.Frame.ParentID == "" {
			r.History.RecordFullDocumentNavigation()
		}
		return false
	})()
}

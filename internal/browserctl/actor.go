package browserctl

import (
	"time"

	"github.com/go-rod/rod"

	"github.com/ias-lab/pasiphae/internal/discovery"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/strategy"
)

// actor adapts a Run to strategy.Actor, so the shared action loop drives the
// real browser without the strategy package importing rod at all.
type actor struct {
	run      *Run
	passive  bool
	rotation strategy.PayloadRotation
}

// NewActor returns a strategy.Actor backed by run.
func NewActor(run *Run, passive bool) strategy.Actor {
	return &actor{run: run, passive: passive}
}

func (a *actor) Discover() ([]model.ActionCandidate, error) {
	res, err := a.run.ctx.Page.Eval(discovery.TraversalScript)
	if err != nil {
		return nil, &model.ScriptEvalFailureError{Expression: "discovery traversal", Err: err}
	}
	snap, err := discovery.Decode(res.Value.String())
	if err != nil {
		return nil, &model.ScriptEvalFailureError{Expression: "decode discovery snapshot", Err: err}
	}
	a.run.Clickable = snap.Clickable
	return snap.Candidates, nil
}

func (a *actor) OpenClickWindow(label string) {
	a.run.Windows.Open(label, time.Now())
	_, _ = a.run.ctx.Page.Eval(`window.__analysis.startClickWindow(arguments[0])`, label)
}

func (a *actor) CloseClickWindow() {
	a.run.Windows.Close(time.Now())
	_, _ = a.run.ctx.Page.Eval(`window.__analysis.endClickWindow()`)
	a.run.drainMutationQueue()
}

func (a *actor) NextPayload() string {
	return a.rotation.Next()
}

func (a *actor) WaitStableDOM(bound time.Duration) {
	deadline := time.Now().Add(bound)
	for time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
}

func (a *actor) AwaitPageReady() {
	_ = a.run.ctx.Page.WaitLoad()
}

// Act performs the candidate's action (spec §4.4 "Action semantics"): for
// inputs, fill (active mode) or focus-click (passive) then submit; for
// anything else, a safe click with a JS-eval fallback.
func (a *actor) Act(c model.ActionCandidate, payload string) (bool, error) {
	el, err := a.run.ctx.Page.Timeout(3 * time.Second).Element(c.Selector)
	if err != nil || el == nil {
		return false, &model.SelectorFailureError{Selector: c.Selector, Reason: "not found"}
	}

	if c.Kind == model.KindInput {
		return a.actInput(el, c, payload)
	}
	return a.safeClick(el, c)
}

func (a *actor) actInput(el *rod.Element, c model.ActionCandidate, payload string) (bool, error) {
	if isInteractable(el) {
		_ = moveToElement(a.run.ctx.Page, el, defaultMovement)
	}
	if err := el.Focus(); err != nil {
		return false, &model.SelectorFailureError{Selector: c.Selector, Reason: "not focusable"}
	}
	if !a.passive && payload != "" {
		if err := el.SelectAllText(); err == nil {
			_ = el.Input(payload)
		}
	}
	submit, err := a.run.ctx.Page.Timeout(1 * time.Second).Element(
		`button[type=submit], input[type=submit], button:has-text("Submit"), button:has-text("Search"), button:has-text("Go")`,
	)
	if err == nil && submit != nil {
		_ = submit.Click("left", 1)
	}
	return true, nil
}

// safeClick implements spec §4.4's fallback chain: native click (3s) then
// scroll-into-view + synthetic click. Never propagates a panic; returns ok.
func (a *actor) safeClick(el *rod.Element, c model.ActionCandidate) (bool, error) {
	if isInteractable(el) {
		_ = moveToElement(a.run.ctx.Page, el, defaultMovement)
	}
	if err := el.Click("left", 1); err == nil {
		return true, nil
	}
	if err := el.ScrollIntoView(); err != nil {
		return false, &model.SelectorFailureError{Selector: c.Selector, Reason: "scroll-into-view failed"}
	}
	if err := el.Click("left", 1); err == nil {
		return true, nil
	}
	// final fallback: locate by selector in-page and call .click() directly
	_, err := a.run.ctx.Page.Eval(`(sel) => { const e = document.querySelector(sel); if (e) e.click(); return !!e; }`, c.Selector)
	if err != nil {
		return false, &model.SelectorFailureError{Selector: c.Selector, Reason: "detached"}
	}
	return true, nil
}

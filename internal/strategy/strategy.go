// Package strategy implements the three interaction policies of spec §4.4.
// All three share one action loop (RunLoop); they differ only in how a
// candidate is selected from the round's discovery set. The loop is
// deliberately decoupled from the browser: an Actor performs the actual
// clicks/fills, so this package — and its hard invariants (error ceilings,
// click-window open/close pairing, minor-error decay) — is unit-testable
// without a browser.
package strategy

import (
	"errors"
	"math/rand"
	"time"

	"github.com/ias-lab/pasiphae/internal/model"
)

const (
	criticalErrorCeiling = 8
	minorErrorCeiling    = 25
	maxSelectorRetries   = 2
)

// Actor is the host-side capability the loop drives. Implementations talk
// to the real browser; tests provide a fake.
type Actor interface {
	// Discover returns the current round's candidate set.
	Discover() ([]model.ActionCandidate, error)
	// OpenClickWindow opens a new click window labeled by the candidate,
	// implicitly closing any window already open.
	OpenClickWindow(label string)
	// CloseClickWindow closes the currently open click window.
	CloseClickWindow()
	// Act performs the candidate's action (click, or fill+submit for
	// inputs) and reports whether it landed. A non-nil error classifies
	// the failure (see classifyError); Act itself never panics.
	Act(c model.ActionCandidate, payload string) (bool, error)
	// WaitStableDOM blocks until the DOM looks settled or the bound elapses.
	WaitStableDOM(bound time.Duration)
	// NextPayload returns the next payload from the fixed rotating set,
	// advancing internal rotation state. Only called in active mode for
	// input candidates.
	NextPayload() string
	// AwaitPageReady blocks until the page is usable again after a
	// context-destroyed recovery.
	AwaitPageReady()
}

// Selector is the capability set that varies per strategy (spec §9 Design
// Notes: "extract a single capability set {select, on_success, on_failure}").
type Selector interface {
	// Select picks the next candidate to act on from the round's set.
	// Returns ok=false if selection is not possible (e.g. empty set).
	Select(candidates []model.ActionCandidate) (c model.ActionCandidate, ok bool)
	// OnSuccess is called after a successful action, with the freshly
	// discovered candidate set (used by the model-guided strategy to
	// update its successor model; the DOM-maximizer only bumps its
	// visit count here).
	OnSuccess(acted model.ActionCandidate, discovered []model.ActionCandidate)
	// OnFailure is called after a failed action.
	OnFailure(acted model.ActionCandidate)
}

// LoopOptions configures RunLoop.
type LoopOptions struct {
	MaxActions int
	Passive    bool
	Rand       *rand.Rand
	// Sleep is the delay function used for jitter/backoff; defaults to
	// time.Sleep. Tests override it with a no-op to run instantly.
	Sleep func(time.Duration)
}

// LoopResult summarizes one strategy run.
type LoopResult struct {
	ActionsPerformed int
	InputsFilled     int
	PayloadsInjected int
	CriticalErrors   int
	MinorErrors      int
}

// isCritical reports whether err is a critical error (execution-context
// destruction or page closure) per spec §4.4's error classification.
func isCritical(err error) bool {
	var ctxDead *model.ContextDeadError
	return errors.As(err, &ctxDead)
}

// isMinor reports whether err is a minor error (selector-not-found,
// element-not-visible, or element-detached).
func isMinor(err error) bool {
	var sel *model.SelectorFailureError
	return errors.As(err, &sel)
}

// RunLoop drives the shared action loop (spec §4.4 pseudocode) to
// completion, returning once max_actions is reached or an error ceiling is
// crossed.
func RunLoop(actor Actor, selector Selector, opts LoopOptions) LoopResult {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var result LoopResult

	for i := 0; i < opts.MaxActions; i++ {
		if result.CriticalErrors >= criticalErrorCeiling || result.MinorErrors >= minorErrorCeiling {
			break
		}

		candidates, discErr := actor.Discover()
		if discErr != nil {
			result.MinorErrors++
			continue
		}
		if len(candidates) == 0 {
			sleepJitter(r, sleep, time.Second, time.Second)
			result.MinorErrors++
			continue
		}

		c, ok := selector.Select(candidates)
		if !ok {
			sleepJitter(r, sleep, time.Second, time.Second)
			result.MinorErrors++
			continue
		}

		actor.OpenClickWindow(c.Label)
		ok, payload, err := attemptAction(actor, c, opts.Passive, sleep)
		actor.WaitStableDOM(time.Second)
		actor.CloseClickWindow()

		if err != nil && isCritical(err) {
			result.CriticalErrors++
			actor.AwaitPageReady()
			sleepJitter(r, sleep, 300*time.Millisecond, 800*time.Millisecond)
			continue
		}

		if ok {
			result.ActionsPerformed++
			if c.Kind == model.KindInput && !opts.Passive && payload != "" {
				result.InputsFilled++
				result.PayloadsInjected++
			}
			discovered, _ := actor.Discover()
			selector.OnSuccess(c, discovered)
			if result.MinorErrors > 0 {
				result.MinorErrors--
			}
		} else {
			result.MinorErrors++
			selector.OnFailure(c)
		}

		sleepJitter(r, sleep, 300*time.Millisecond, 800*time.Millisecond)
	}

	return result
}

// attemptAction performs the candidate's action, retrying minor (selector)
// failures up to maxSelectorRetries times with a 0.5s backoff (spec §4.4).
func attemptAction(actor Actor, c model.ActionCandidate, passive bool, sleep func(time.Duration)) (ok bool, payload string, err error) {
	if c.Kind == model.KindInput && !passive {
		payload = actor.NextPayload()
	}
	for attempt := 0; attempt <= maxSelectorRetries; attempt++ {
		ok, err = actor.Act(c, payload)
		if err == nil {
			return ok, payload, nil
		}
		if isCritical(err) {
			return false, payload, err
		}
		if !isMinor(err) {
			return false, payload, err
		}
		sleep(500 * time.Millisecond)
	}
	return false, payload, err
}

func sleepJitter(r *rand.Rand, sleep func(time.Duration), lo, hi time.Duration) {
	if hi <= lo {
		sleep(lo)
		return
	}
	d := lo + time.Duration(r.Int63n(int64(hi-lo)))
	sleep(d)
}

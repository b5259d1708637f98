package strategy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

// fakeActor is a scripted Actor used to drive RunLoop without a browser.
type fakeActor struct {
	candidates []model.ActionCandidate
	discoverErr error

	actResult func(c model.ActionCandidate) (bool, error)

	openLabels  []string
	closeCount  int
	payloadSeq  []string
	payloadIdx  int
	awaitCalls  int
}

func (f *fakeActor) Discover() ([]model.ActionCandidate, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.candidates, nil
}

func (f *fakeActor) OpenClickWindow(label string) { f.openLabels = append(f.openLabels, label) }
func (f *fakeActor) CloseClickWindow()             { f.closeCount++ }

func (f *fakeActor) Act(c model.ActionCandidate, payload string) (bool, error) {
	return f.actResult(c)
}

func (f *fakeActor) WaitStableDOM(bound time.Duration) {}

func (f *fakeActor) NextPayload() string {
	if f.payloadIdx >= len(f.payloadSeq) {
		return ""
	}
	p := f.payloadSeq[f.payloadIdx]
	f.payloadIdx++
	return p
}

func (f *fakeActor) AwaitPageReady() { f.awaitCalls++ }

// fakeSelector always returns the first candidate and records calls.
type fakeSelector struct {
	selectOK     bool
	successCalls int
	failureCalls int
}

func (s *fakeSelector) Select(candidates []model.ActionCandidate) (model.ActionCandidate, bool) {
	if !s.selectOK || len(candidates) == 0 {
		return model.ActionCandidate{}, false
	}
	return candidates[0], true
}

func (s *fakeSelector) OnSuccess(acted model.ActionCandidate, discovered []model.ActionCandidate) {
	s.successCalls++
}

func (s *fakeSelector) OnFailure(acted model.ActionCandidate) { s.failureCalls++ }

func noSleep(time.Duration) {}

func TestRunLoop_StopsAtMaxActions(t *testing.T) {
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#a", Kind: model.KindButton}},
		actResult:  func(c model.ActionCandidate) (bool, error) { return true, nil },
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 3, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, 3, res.ActionsPerformed)
	assert.Equal(t, 3, sel.successCalls)
	assert.Equal(t, 3, actor.closeCount)
}

func TestRunLoop_StopsAtCriticalErrorCeiling(t *testing.T) {
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#a", Kind: model.KindButton}},
		actResult: func(c model.ActionCandidate) (bool, error) {
			return false, &model.ContextDeadError{Detail: "gone"}
		},
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 1000, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, criticalErrorCeiling, res.CriticalErrors)
	assert.Equal(t, criticalErrorCeiling, actor.awaitCalls)
	assert.Equal(t, 0, res.ActionsPerformed)
}

func TestRunLoop_StopsAtMinorErrorCeiling(t *testing.T) {
	actor := &fakeActor{discoverErr: &model.SelectorFailureError{Selector: "#a", Reason: "not found"}}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 1000, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, minorErrorCeiling, res.MinorErrors)
}

func TestRunLoop_OpensAndClosesOneClickWindowPerAction(t *testing.T) {
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#a", Kind: model.KindButton, Label: "Go"}},
		actResult:  func(c model.ActionCandidate) (bool, error) { return true, nil },
	}
	sel := &fakeSelector{selectOK: true}

	RunLoop(actor, sel, LoopOptions{MaxActions: 2, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, []string{"Go", "Go"}, actor.openLabels)
	assert.Equal(t, 2, actor.closeCount)
}

func TestRunLoop_SuccessfulActionDecaysMinorErrors(t *testing.T) {
	calls := 0
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#a", Kind: model.KindButton}},
		actResult: func(c model.ActionCandidate) (bool, error) {
			calls++
			if calls == 1 {
				return false, nil
			}
			return true, nil
		},
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 2, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, 0, res.MinorErrors)
	assert.Equal(t, 1, sel.failureCalls)
	assert.Equal(t, 1, sel.successCalls)
}

func TestRunLoop_RetriesMinorSelectorFailureThenSucceeds(t *testing.T) {
	attempts := 0
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#a", Kind: model.KindButton}},
		actResult: func(c model.ActionCandidate) (bool, error) {
			attempts++
			if attempts <= maxSelectorRetries {
				return false, &model.SelectorFailureError{Selector: "#a", Reason: "not visible yet"}
			}
			return true, nil
		},
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 1, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, maxSelectorRetries+1, attempts)
	assert.Equal(t, 1, res.ActionsPerformed)
}

func TestRunLoop_InputActionFillsPayloadInActiveMode(t *testing.T) {
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#in", Kind: model.KindInput}},
		payloadSeq: []string{"<script>alert(1)</script>"},
		actResult:  func(c model.ActionCandidate) (bool, error) { return true, nil },
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 1, Passive: false, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, 1, res.InputsFilled)
	assert.Equal(t, 1, res.PayloadsInjected)
}

func TestRunLoop_PassiveModeDoesNotInjectPayloads(t *testing.T) {
	actor := &fakeActor{
		candidates: []model.ActionCandidate{{Selector: "#in", Kind: model.KindInput}},
		actResult:  func(c model.ActionCandidate) (bool, error) { return true, nil },
	}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: 1, Passive: true, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, 0, res.PayloadsInjected)
}

func TestRunLoop_EmptyCandidateSetCountsMinorErrorAndContinues(t *testing.T) {
	actor := &fakeActor{candidates: nil, actResult: func(c model.ActionCandidate) (bool, error) { return true, nil }}
	sel := &fakeSelector{selectOK: true}

	res := RunLoop(actor, sel, LoopOptions{MaxActions: minorErrorCeiling + 5, Rand: rand.New(rand.NewSource(1)), Sleep: noSleep})

	assert.Equal(t, minorErrorCeiling, res.MinorErrors)
	assert.Equal(t, 0, res.ActionsPerformed)
}

package browserctl

import (
	"math/rand"
	"time"

	"github.com/ias-lab/pasiphae/internal/aggregate"
	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/detect"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/strategy"
	"github.com/ias-lab/pasiphae/internal/taint"
)

// AnalyzeURL is the Run Coordinator (spec §4.8): launch, instrument,
// navigate, baseline, drive one interaction strategy to completion, collect
// every detector's evidence, classify taint flows, and tear down — no matter
// which step failed partway through. The interaction/detection phase races
// the per-URL wall-clock ceiling (spec §5): if it fires first, the run
// returns immediately with a Timeout error and the deferred browser/context
// cleanup below still runs, closing out whatever the stalled page was doing.
func AnalyzeURL(url string, opts config.Options) (res model.RunResult) {
	opts = opts.WithDefaults()
	res.URL = url
	res.Strategy = string(opts.Strategy)
	deadline := time.Now().Add(config.PerURLWallClockCeiling)

	browser, err := LaunchBrowserWithTimeout(opts, opts.Timeout)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	defer browser.Close()

	ctx, err := NewContext(browser, opts)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	defer ctx.Close()

	ctx.AutoAcceptDialogs()

	run, err := NewRun(ctx, opts.BaselineDuration)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	run.TrackNetwork()

	run.StartBaseline(time.Now(), opts.BaselineDuration)
	if _, err := NavigateWithRetry(ctx, url, opts.Timeout); err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}

	time.Sleep(opts.BaselineDuration)
	cookieAccepted := ctx.DismissCookieBanner()

	remaining := time.Until(deadline)
	if remaining <= 0 {
		res.Errors = append(res.Errors, &model.TimeoutError{URL: url, Elapsed: config.PerURLWallClockCeiling.String()})
		return res
	}

	done := make(chan interactionPhaseResult, 1)
	go func() { done <- runInteractionPhase(run, opts, cookieAccepted) }()

	select {
	case pr := <-done:
		res.Counters = pr.counters
		res.Tags = pr.tags
		res.ClickWindowRequestCounts = pr.windowRequestCounts
		res.Verdict = pr.verdict
		res.Confidence = pr.confidence
		res.Detections = pr.detections
		res.TaintFlows = pr.taintFlows
		res.Findings = pr.findings
	case <-time.After(remaining):
		res.Errors = append(res.Errors, &model.TimeoutError{URL: url, Elapsed: config.PerURLWallClockCeiling.String()})
	}

	return res
}

// interactionPhaseResult is everything the strategy loop and the detector/
// taint read produce, computed off the main goroutine so AnalyzeURL can
// race it against the wall-clock ceiling.
type interactionPhaseResult struct {
	counters            model.ActionCounters
	tags                model.TagCounts
	windowRequestCounts map[string]int
	verdict             model.Verdict
	confidence          float64
	detections          []model.DetectionResult
	taintFlows          []model.TaintFlow
	findings            []model.Finding
}

// runInteractionPhase drives the interaction strategy, drains the mutation
// queue after a quiescence window, and runs detection + taint
// classification (spec §4.8 steps following baseline/navigation).
func runInteractionPhase(run *Run, opts config.Options, cookieAccepted bool) interactionPhaseResult {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	selector := newSelector(opts, r)
	actor := NewActor(run, opts.Passive)

	loopResult := strategy.RunLoop(actor, selector, strategy.LoopOptions{
		MaxActions: opts.MaxActions,
		Passive:    opts.Passive,
		Rand:       r,
	})

	// quiescence window before the final detector read (spec §4.8).
	time.Sleep(2 * time.Second)
	run.drainMutationQueue()

	var pr interactionPhaseResult
	pr.counters = model.ActionCounters{
		ActionsPerformed: loopResult.ActionsPerformed,
		InputsFilled:     loopResult.InputsFilled,
		PayloadsInjected: loopResult.PayloadsInjected,
	}
	pr.tags = model.TagCounts{Initial: run.DOM.InitialTagCount, Final: run.DOM.FinalTagCount}
	pr.windowRequestCounts = run.windowRequestCounts

	signals := aggregate.Signals{
		History:   detect.History{State: &run.History}.Analyze(),
		Network:   detect.Network{State: &run.Network}.Analyze(),
		DOM:       detect.DOM{State: &run.DOM, ClickWindows: run.Windows.Count()}.Analyze(),
		Title:     detect.Title{State: &run.Title}.Analyze(),
		Clickable: detect.Clickable{State: &run.Clickable}.Analyze(),
	}
	agg := aggregate.Analyze(signals, run.History.HistoryCalls(), run.History.FullDocNavs)
	pr.verdict = agg.Verdict
	pr.confidence = agg.Confidence
	pr.detections = signals.All()

	flows := run.Taint.Flows()
	pr.taintFlows = flows
	for _, f := range flows {
		pr.findings = append(pr.findings, taint.ToFinding(f, cookieAccepted, false))
	}

	return pr
}

// newSelector instantiates the configured interaction strategy.
func newSelector(opts config.Options, r *rand.Rand) strategy.Selector {
	switch opts.Strategy {
	case config.StrategyModelGuided:
		return strategy.NewModelGuided(model.NewStateIndependentModel(), opts.WModel, r)
	case config.StrategyDOMMaximizer:
		return strategy.NewDOMMaximizer(r)
	default:
		return strategy.NewRandomWalk(r)
	}
}

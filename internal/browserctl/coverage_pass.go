package browserctl

import (
	"math/rand"
	"time"

	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/strategy"
)

// AnalyzeURLCoverage runs the same navigate-and-interact lifecycle as
// AnalyzeURL but instruments CDP Profiler coverage instead of the taint/SPA
// detectors (spec §4.9's coverage pass). It is a second, independent browser
// session: the dual-mode runner joins this with a taint-pass RunResult by
// URL, never by sharing a page.
func AnalyzeURLCoverage(url string, opts config.Options) model.CoverageResult {
	opts = opts.WithDefaults()
	res := model.CoverageResult{URL: url}

	browser, err := LaunchBrowserWithTimeout(opts, opts.Timeout)
	if err != nil {
		return res
	}
	defer browser.Close()

	ctx, err := NewContext(browser, opts)
	if err != nil {
		return res
	}
	defer ctx.Close()

	ctx.AutoAcceptDialogs()
	if err := ctx.StartCoverage(); err != nil {
		return res
	}

	run, err := NewRun(ctx, opts.BaselineDuration)
	if err != nil {
		return res
	}

	run.StartBaseline(time.Now(), opts.BaselineDuration)
	if _, err := NavigateWithRetry(ctx, url, opts.Timeout); err != nil {
		return res
	}
	time.Sleep(opts.BaselineDuration)
	ctx.DismissCookieBanner()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	selector := newSelector(opts, r)
	actor := NewActor(run, opts.Passive)
	strategy.RunLoop(actor, selector, strategy.LoopOptions{
		MaxActions: opts.MaxActions,
		Passive:    opts.Passive,
		Rand:       r,
	})

	time.Sleep(2 * time.Second)
	entries, err := ctx.StopCoverage()
	if err != nil {
		return res
	}
	res.Entries = entries
	return res
}

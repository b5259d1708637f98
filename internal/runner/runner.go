// Package runner implements the Dual-Mode Runner (spec §4.9): the taint/SPA
// pass and the coverage pass are independent browser sessions for the same
// URL and strategy, run concurrently and joined by URL once both finish.
// Grounded on the teacher's ScanEngine (pkg/scan/engine/engine.go), which
// pools concurrent browser-backed work with sourcegraph/conc.
package runner

import (
	"github.com/sourcegraph/conc"

	"github.com/ias-lab/pasiphae/internal/browserctl"
	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
)

// Result is the dual-mode runner's joined output for one URL.
type Result struct {
	Run      model.RunResult
	Coverage model.CoverageResult
}

// AnalyzeURL runs the taint/SPA pass and the coverage pass concurrently and
// returns both once complete.
func AnalyzeURL(url string, opts config.Options) Result {
	var out Result
	var wg conc.WaitGroup

	wg.Go(func() {
		out.Run = browserctl.AnalyzeURL(url, opts)
	})
	wg.Go(func() {
		out.Coverage = browserctl.AnalyzeURLCoverage(url, opts)
	})
	wg.Wait()

	return out
}

// AnalyzeURLs fans AnalyzeURL out across urls, bounding concurrent URLs to
// maxConcurrent; each URL itself spawns two browser sessions, so up to
// 2*maxConcurrent sessions run at once.
func AnalyzeURLs(urls []string, opts config.Options, maxConcurrent int) []Result {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	results := make([]Result, len(urls))
	sem := make(chan struct{}, maxConcurrent)
	var wg conc.WaitGroup

	for i, url := range urls {
		i, url := i, url
		sem <- struct{}{}
		wg.Go(func() {
			defer func() { <-sem }()
			results[i] = AnalyzeURL(url, opts)
		})
	}
	wg.Wait()

	return results
}

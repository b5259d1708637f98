package browserctl

import (
	"strings"

	"github.com/go-rod/rod/lib/proto"

	"github.com/ias-lab/pasiphae/internal/model"
)

// StartCoverage enables the CDP Profiler domain and begins precise,
// per-function byte coverage collection (spec §4.9 coverage pass), grounded
// on the same proto.X{}.Call(page) idiom already used for
// SecuritySetIgnoreCertificateErrors and PageHandleJavaScriptDialog.
func (c *Context) StartCoverage() error {
	if err := proto.ProfilerEnable{}.Call(c.Page); err != nil {
		return &model.ProtocolFailureError{Operation: "Profiler.enable", Err: err}
	}
	if err := (proto.ProfilerStartPreciseCoverage{CallCount: true, Detailed: true}).Call(c.Page); err != nil {
		return &model.ProtocolFailureError{Operation: "Profiler.startPreciseCoverage", Err: err}
	}
	return nil
}

// StopCoverage takes a final precise-coverage snapshot, stops collection,
// and reduces it to one CoverageEntry per script: total bytes is the sum of
// every (end-start) range, used bytes the sum of ranges with count > 0.
// Scripts with an empty or internal ("extensions::", "node:") URL are
// skipped, as they're never attributable to the analyzed page.
func (c *Context) StopCoverage() ([]model.CoverageEntry, error) {
	res, err := proto.ProfilerTakePreciseCoverage{}.Call(c.Page)
	if err != nil {
		return nil, &model.ProtocolFailureError{Operation: "Profiler.takePreciseCoverage", Err: err}
	}
	_ = proto.ProfilerStopPreciseCoverage{}.Call(c.Page)
	_ = proto.ProfilerDisable{}.Call(c.Page)

	entries := make([]model.CoverageEntry, 0, len(res.Result))
	for _, script := range res.Result {
		if script.URL == "" || strings.HasPrefix(script.URL, "extensions::") || strings.HasPrefix(script.URL, "node:") {
			continue
		}
		var total, used int
		for _, fn := range script.Functions {
			for _, rng := range fn.Ranges {
				bytes := int(rng.EndOffset - rng.StartOffset)
				total += bytes
				if rng.Count > 0 {
					used += bytes
				}
			}
		}
		entries = append(entries, model.CoverageEntry{ScriptURL: script.URL, TotalBytes: total, UsedBytes: used})
	}
	return entries, nil
}

package browserctl

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ias-lab/pasiphae/internal/model"
)

// ignoreHostTokens blocks analytics/tracking hosts from contributing to the
// Network detector at all (spec §3 DetectorState.Network "ignore-list match
// blocks a request from contributing"), grounded on the teacher's
// HijackWithContext ignoreKeywords list (pkg/browser/hijack.go).
var ignoreHostTokens = []string{
	"google-analytics", "googletagmanager", "doubleclick", "facebook.com",
	"pinterest", "instagram", "tiktok", "hotjar", "yandex", "segment.io",
	"mixpanel", "amplitude", "sentry.io",
}

func isIgnoredHost(url string) bool {
	lower := strings.ToLower(url)
	for _, tok := range ignoreHostTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// TrackNetwork installs a request hijack that attributes every request to
// the baseline, post-click, or document phase, per the run's click-window
// clock (spec §4.2 "Network tracking"). Grounded on the teacher's
// HijackRequests/HijackResult idiom (pkg/browser/hijack.go), simplified to
// pure observation (no body rewriting).
func (r *Run) TrackNetwork() {
	router := r.ctx.Page.HijackRequests()
	router.MustAdd("*", func(hj *rod.Hijack) {
		url := hj.Request.URL().String()
		method := hj.Request.Method()
		kind := string(hj.Request.Type())

		now := time.Now()
		ignored := isIgnoredHost(url)

		phase := model.PhasePostClick
		if r.inBaseline(now) {
			phase = model.PhaseBaseline
		}
		if kind == string(proto.NetworkResourceTypeDocument) {
			phase = model.PhaseDocument
		}

		jsonResp := false
		if loadErr := hj.LoadResponse(http.DefaultClient, true); loadErr == nil {
			jsonResp = strings.Contains(hj.Response.Headers().Get("Content-Type"), "application/json")
		} else {
			hj.ContinueRequest(&proto.FetchContinueRequest{})
		}
		r.Network.Record(model.NetworkRequest{
			URL: url, Method: method, ResourceKind: kind, Time: now, JSONResponse: jsonResp,
		}, phase, ignored)

		if w := r.Windows.Current(); w != nil && !ignored {
			r.windowRequestCounts[w.Label]++
		}
	})
	go router.Run()
}

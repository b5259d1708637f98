package taint

import (
	"strings"

	"github.com/ias-lab/pasiphae/internal/model"
)

// Severity is the vulnerability classifier's output tier (spec §4.7).
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// xssPatterns is the fixed XSS-pattern set checked against the tainted
// value for the +0.10 confidence bonus (spec §4.7), grounded on the
// teacher's pkg/payloads/dom_xss.go payload family (event-handler and
// javascript: URL markers, stripped of the alert(...) marker body since
// this only needs to recognize the shape, not a specific payload).
var xssPatterns = []string{
	"onerror=", "onload=", "onfocus=", "ontoggle=", "onstart=",
	"<script", "<svg", "<img", "<iframe", "<body", "<details", "<video",
	"javascript:",
}

func matchesXSSPattern(value string) bool {
	lower := strings.ToLower(value)
	for _, p := range xssPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Classify scores a TaintFlow's confidence and severity (spec §4.7).
func Classify(flow model.TaintFlow) (confidence float64, severity Severity) {
	conf := 0.50
	if floor, ok := SinkMinConfidence(flow.SinkName); ok && floor > conf {
		conf = floor
	}
	if HasDangerousSourceToken(flow.SourceNames) {
		conf += 0.10
	}
	if matchesXSSPattern(flow.TaintedValue) {
		conf += 0.10
	}
	conf = model.Clamp(conf, 0, 0.98)

	cat := ClassifySink(flow.SinkName)
	switch {
	case conf >= 0.85 && (cat == SinkJSExecution || cat == SinkHTMLInjection):
		severity = SeverityCritical
	case conf >= 0.70:
		severity = SeverityHigh
	case conf >= 0.50:
		severity = SeverityMedium
	default:
		severity = SeverityLow
	}
	return conf, severity
}

// ToFinding wraps flow with Classify's output plus the contextual metadata
// spec §3's Finding carries (cookie banner / reload context is supplied by
// the caller, which knows the run's interaction history).
func ToFinding(flow model.TaintFlow, cookieBannerAccepted, afterReload bool) model.Finding {
	conf, sev := Classify(flow)
	return model.Finding{
		Flow:                 flow,
		CookieBannerAccepted: cookieBannerAccepted,
		AfterReload:          afterReload,
		Confidence:           conf,
		Severity:             string(sev),
	}
}

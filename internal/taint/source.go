package taint

import (
	"regexp"
	"strings"
)

// SourceCategory is one of the five source taxonomy buckets (spec §4.7).
type SourceCategory string

const (
	SourceURL       SourceCategory = "URL"
	SourceStorage   SourceCategory = "STORAGE"
	SourceDOM       SourceCategory = "DOM"
	SourceUserInput SourceCategory = "USER_INPUT"
	SourceAPI       SourceCategory = "API"
	SourceUnknown   SourceCategory = "UNKNOWN"
)

// sourceCategoryTable is grounded on the teacher's DOMXSSSources() table
// (pkg/web/dom_xss_sources.go), collapsed into the spec's categories.
var sourceCategoryTable = map[string]SourceCategory{
	"location.hash":        SourceURL,
	"location.search":       SourceURL,
	"location.href":         SourceURL,
	"location.pathname":     SourceURL,
	"document.URL":          SourceURL,
	"document.documentURI":  SourceURL,
	"document.baseURI":      SourceURL,

	"localStorage":   SourceStorage,
	"sessionStorage": SourceStorage,

	"document.referrer": SourceDOM,
	"document.cookie":    SourceDOM,
	"history.state":      SourceDOM,

	"window.name":  SourceAPI,
	"postMessage":  SourceAPI,
}

// dangerousSourceTokens feed the +0.10 confidence bonus (spec §4.7).
var dangerousSourceTokens = []string{"location", "document.url", "document.referrer", "window.name", "postmessage"}

// ClassifySource maps a known source name to its category, or applies the
// value-inspection heuristic from spec §4.7 when the name is unrecognized.
func ClassifySource(name, value string) SourceCategory {
	if cat, ok := sourceCategoryTable[name]; ok {
		return cat
	}
	lower := strings.ToLower(name)
	for token, cat := range map[string]SourceCategory{
		"location": SourceURL, "storage": SourceStorage, "referrer": SourceDOM,
		"cookie": SourceDOM, "message": SourceAPI, "window.name": SourceAPI,
	} {
		if strings.Contains(lower, token) {
			return cat
		}
	}
	return classifyByValue(value)
}

var (
	urlFragmentPattern = regexp.MustCompile(`^[a-zA-Z0-9+.-]+://|^[#?]`)
	jsonLikePattern    = regexp.MustCompile(`^\s*[\{\[]`)
	htmlTagPattern     = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
)

// classifyByValue inspects the tainted value itself when the source name is
// unknown (spec §4.7: "URL-like fragment → URL; JSON-like → STORAGE;
// HTML-tag-like → USER_INPUT").
func classifyByValue(value string) SourceCategory {
	switch {
	case urlFragmentPattern.MatchString(value):
		return SourceURL
	case jsonLikePattern.MatchString(value):
		return SourceStorage
	case htmlTagPattern.MatchString(value):
		return SourceUserInput
	}
	return SourceUnknown
}

// HasDangerousSourceToken reports whether any source name in names contains
// one of the dangerous-source tokens (spec §4.7 confidence bonus).
func HasDangerousSourceToken(names []string) bool {
	for _, n := range names {
		lower := strings.ToLower(n)
		for _, tok := range dangerousSourceTokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
	}
	return false
}

package model

import (
	"sort"
	"strings"
	"time"
)

// TaintFlow is the canonical shape every heterogeneous taint report is
// normalized into.
type TaintFlow struct {
	SinkName      string
	SourceNames   []string
	TaintedValue  string
	LocationURL   string
	ScriptURL     string
	Line          int
	Propagation   []string
	Timestamp     time.Time
	Subframe      bool
}

// DedupKey is the identity used to deduplicate flows:
// (sink_name, sorted(source_names), location_url).
func (f TaintFlow) DedupKey() string {
	sources := append([]string(nil), f.SourceNames...)
	sort.Strings(sources)
	return f.SinkName + "\x00" + strings.Join(sources, ",") + "\x00" + f.LocationURL
}

// Finding wraps a TaintFlow with contextual metadata and a computed confidence.
type Finding struct {
	Flow              TaintFlow
	CookieBannerAccepted bool
	AfterReload       bool
	Confidence        float64
	Severity          string
}

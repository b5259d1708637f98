// Package taint implements the Taint-Flow Parser and Vulnerability
// Classifier (spec §4.7): normalizing heterogeneous taint-report shapes into
// canonical model.TaintFlow, deduplicating, and scoring confidence/severity.
package taint

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ias-lab/pasiphae/internal/model"
)

// PseudoHookRecord mirrors the JSON finding shape emitted by the pseudo-taint
// fallback script (internal/pagescript/taint.go) and, where the native taint
// engine is available, the equivalent native shape (spec §4.2).
type PseudoHookRecord struct {
	Subframe    bool     `json:"subframe"`
	Loc         string   `json:"loc"`
	ParentLoc   string   `json:"parentloc"`
	Referrer    string   `json:"referrer"`
	Script      string   `json:"script"`
	Line        int      `json:"line"`
	Str         string   `json:"str"`
	Sink        string   `json:"sink"`
	TaintChain  []string `json:"taintChain"`
	Sources     []string `json:"sources"`
	Domain      string   `json:"domain"`
	URL         string   `json:"url"`
	TimestampMs int64    `json:"timestampMs"`
}

// ToFlow converts a pseudo-hook record into a canonical TaintFlow.
func (r PseudoHookRecord) ToFlow() model.TaintFlow {
	return model.TaintFlow{
		SinkName:     r.Sink,
		SourceNames:  append([]string(nil), r.Sources...),
		TaintedValue: r.Str,
		LocationURL:  firstNonEmpty(r.URL, r.Loc),
		ScriptURL:    r.Script,
		Line:         r.Line,
		Propagation:  append([]string(nil), r.TaintChain...),
		Timestamp:    timestampFromMs(r.TimestampMs),
		Subframe:     r.Subframe,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func timestampFromMs(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// consoleTaintPrefix marks a console message carrying a raw taint line
// (spec §4.7: "console [TAINT] lines").
const consoleTaintPrefix = "[TAINT]"

// ParseConsoleLine parses a console message of the form
// "[TAINT] sink=X source=Y value=Z url=W" into a TaintFlow. Returns
// ok=false (never an error) if the line doesn't match — per spec §9,
// unrecognized shapes are rejected silently, not treated as a run failure.
func ParseConsoleLine(line string) (model.TaintFlow, bool) {
	if !strings.HasPrefix(line, consoleTaintPrefix) {
		return model.TaintFlow{}, false
	}
	fields := parseKeyValueFields(strings.TrimSpace(strings.TrimPrefix(line, consoleTaintPrefix)))
	sink, hasSink := fields["sink"]
	if !hasSink || sink == "" {
		return model.TaintFlow{}, false
	}
	var sources []string
	if src := fields["source"]; src != "" {
		sources = append(sources, src)
	}
	return model.TaintFlow{
		SinkName:     sink,
		SourceNames:  sources,
		TaintedValue: fields["value"],
		LocationURL:  fields["url"],
		Timestamp:    time.Now(),
	}, true
}

// parseKeyValueFields splits "k=v k2=v2 ..." tokens, tolerating values with
// no surrounding quoting (console taint lines are host-constructed, not
// attacker-constructed, so this is not a security-sensitive parse).
func parseKeyValueFields(s string) map[string]string {
	out := make(map[string]string)
	for _, tok := range strings.Fields(s) {
		parts := strings.SplitN(tok, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[parts[0]] = parts[1]
	}
	return out
}

// NativeEvent is the shape the browser's own taint-report event carries when
// a native (taint-capable) build is in use. Fields mirror the pseudo-hook
// record closely since the controller normalizes both through the same
// report_taint binding (spec §4.1/§4.2); this type exists to make the three
// parse attempts (spec §9: "pseudo-hook record → console string → native
// event") structurally distinct for ParseAny's dispatch.
type NativeEvent struct {
	Sink        string
	Sources     []string
	Value       string
	URL         string
	ScriptURL   string
	Line        int
	Propagation []string
	Subframe    bool
	Timestamp   time.Time
}

// ToFlow converts a native event into a canonical TaintFlow.
func (e NativeEvent) ToFlow() model.TaintFlow {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return model.TaintFlow{
		SinkName:     e.Sink,
		SourceNames:  append([]string(nil), e.Sources...),
		TaintedValue: e.Value,
		LocationURL:  e.URL,
		ScriptURL:    e.ScriptURL,
		Line:         e.Line,
		Propagation:  append([]string(nil), e.Propagation...),
		Timestamp:    ts,
		Subframe:     e.Subframe,
	}
}

// ParseAny dispatches raw across the three recognized shapes in the order
// spec §9 prescribes: pseudo-hook record, then console string, then native
// event; a decoded-JSON map[string]any is also accepted, via
// parseGenericMap. Returns ok=false if none match.
func ParseAny(raw any) (model.TaintFlow, bool) {
	switch v := raw.(type) {
	case PseudoHookRecord:
		return v.ToFlow(), true
	case *PseudoHookRecord:
		return v.ToFlow(), true
	case string:
		return ParseConsoleLine(v)
	case NativeEvent:
		return v.ToFlow(), true
	case *NativeEvent:
		return v.ToFlow(), true
	case map[string]any:
		return parseGenericMap(v)
	default:
		return model.TaintFlow{}, false
	}
}

// parseGenericMap handles a decoded-JSON map[string]any, the shape rod's
// binding callback actually hands the host when no typed struct was
// supplied.
func parseGenericMap(v map[string]any) (model.TaintFlow, bool) {
	sink, _ := v["sink"].(string)
	if sink == "" {
		return model.TaintFlow{}, false
	}
	flow := model.TaintFlow{
		SinkName:     sink,
		TaintedValue: asString(v["str"]),
		LocationURL:  firstNonEmpty(asString(v["url"]), asString(v["loc"])),
		ScriptURL:    asString(v["script"]),
		Subframe:     asBool(v["subframe"]),
	}
	if line, ok := v["line"]; ok {
		flow.Line = asInt(line)
	}
	if ts, ok := v["timestampMs"]; ok {
		flow.Timestamp = timestampFromMs(int64(asInt(ts)))
	}
	flow.SourceNames = asStringSlice(v["sources"])
	flow.Propagation = asStringSlice(v["taintChain"])
	return flow, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// rawDedupKey is the pre-canonicalization dedup key from spec §4.7:
// (source_name, sink_name, propagation_length). It guards against the same
// in-page hook firing twice for the same logical event before a location_url
// has even been attached, distinct from TaintFlow.DedupKey()'s run-level
// identity (spec §3) which the Buffer also enforces at export time.
func rawDedupKey(primarySource, sink string, propagationLen int) string {
	return fmt.Sprintf("%s\x00%s\x00%d", primarySource, sink, propagationLen)
}

func primarySource(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	return sources[0]
}

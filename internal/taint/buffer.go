package taint

import "github.com/ias-lab/pasiphae/internal/model"

// Buffer interns taint flows across a run, guaranteeing dedup-key uniqueness
// at export time (spec §8 invariant 4). It also collapses duplicate raw
// events — same primary source, sink, and propagation length — that arrive
// before a flow has accumulated its final location_url, per rawDedupKey.
type Buffer struct {
	raw   map[string]struct{}
	flows map[string]model.TaintFlow
	order []string
}

// NewBuffer returns an empty taint buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		raw:   make(map[string]struct{}),
		flows: make(map[string]model.TaintFlow),
	}
}

// Add interns raw, parsing it via ParseAny. Returns the parsed flow and
// whether it was newly added (false if raw didn't parse or was a duplicate).
func (b *Buffer) Add(raw any) (model.TaintFlow, bool) {
	flow, ok := ParseAny(raw)
	if !ok {
		return model.TaintFlow{}, false
	}
	return b.AddFlow(flow)
}

// AddFlow interns an already-parsed flow directly.
func (b *Buffer) AddFlow(flow model.TaintFlow) (model.TaintFlow, bool) {
	rk := rawDedupKey(primarySource(flow.SourceNames), flow.SinkName, len(flow.Propagation))
	if _, seen := b.raw[rk]; seen {
		return model.TaintFlow{}, false
	}
	b.raw[rk] = struct{}{}

	key := flow.DedupKey()
	if _, seen := b.flows[key]; seen {
		return model.TaintFlow{}, false
	}
	b.flows[key] = flow
	b.order = append(b.order, key)
	return flow, true
}

// Flows returns all interned flows in insertion order.
func (b *Buffer) Flows() []model.TaintFlow {
	out := make([]model.TaintFlow, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.flows[k])
	}
	return out
}

// Len reports how many distinct flows are currently interned.
func (b *Buffer) Len() int {
	return len(b.flows)
}

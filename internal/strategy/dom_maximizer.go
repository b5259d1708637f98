package strategy

import (
	"math/rand"
	"strings"

	"github.com/ias-lab/pasiphae/internal/model"
)

var domGrowthKeywords = []string{"more", "load", "show", "expand", "mehr", "laden", "next", "continue"}
var domGrowthSelectorTokens = []string{"tab", "accordion", "expand", "collapse", "toggle"}

// DOMMaximizer implements Strategy 2 (spec §4.4): weights candidates toward
// those observed (via UpdateObservedGrowth) to grow the DOM. It does no
// lazy-load triggering itself (see LazyLoadSelectors).
type DOMMaximizer struct {
	rand       *rand.Rand
	visitCount map[string]int
	domDelta   map[string]float64 // most recent positive Δdom per candidate
	domBefore  int
}

// NewDOMMaximizer returns a DOMMaximizer selector.
func NewDOMMaximizer(r *rand.Rand) *DOMMaximizer {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return &DOMMaximizer{rand: r, visitCount: make(map[string]int), domDelta: make(map[string]float64)}
}

// RecordDOMSize stores the DOM node count observed immediately before the
// next action. The stored value is not read by OnSuccess or weight; Δdom
// reaches the weights only through UpdateObservedGrowth.
func (s *DOMMaximizer) RecordDOMSize(nodeCount int) {
	s.domBefore = nodeCount
}

func (s *DOMMaximizer) weight(c model.ActionCandidate) float64 {
	w := 1.0
	if c.Kind == model.KindInput {
		w *= 5.0
	}
	if delta, grew := s.domDelta[c.ID()]; grew && delta > 0 {
		w *= 1 + delta/5.0
	} else {
		w /= 1 + float64(s.visitCount[c.ID()])
	}
	label := strings.ToLower(c.Label)
	for _, kw := range domGrowthKeywords {
		if strings.Contains(label, kw) {
			w *= 2.0
			break
		}
	}
	selector := strings.ToLower(c.Selector)
	for _, tok := range domGrowthSelectorTokens {
		if strings.Contains(selector, tok) {
			w *= 1.5
			break
		}
	}
	return w
}

// Select samples proportional to weight, except unvisited inputs are
// always preferred first (spec §4.4).
func (s *DOMMaximizer) Select(candidates []model.ActionCandidate) (model.ActionCandidate, bool) {
	if len(candidates) == 0 {
		return model.ActionCandidate{}, false
	}

	var unvisitedInputs []model.ActionCandidate
	for _, c := range candidates {
		if c.Kind == model.KindInput && s.visitCount[c.ID()] == 0 {
			unvisitedInputs = append(unvisitedInputs, c)
		}
	}
	if len(unvisitedInputs) > 0 {
		return unvisitedInputs[s.rand.Intn(len(unvisitedInputs))], true
	}

	weights := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		weights[i] = s.weight(c)
		total += weights[i]
	}
	if total <= 0 {
		return candidates[s.rand.Intn(len(candidates))], true
	}
	pick := s.rand.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if pick <= cum {
			return candidates[i], true
		}
	}
	return candidates[len(candidates)-1], true
}

// OnSuccess bumps the acted candidate's visit count. It does not touch the
// DOM-growth delta and ignores discovered; growth is recorded separately
// via UpdateObservedGrowth.
func (s *DOMMaximizer) OnSuccess(acted model.ActionCandidate, discovered []model.ActionCandidate) {
	s.visitCount[acted.ID()]++
}

// UpdateObservedGrowth records that acting on id changed the DOM node count
// by delta, feeding the 1+Δdom/5 multiplier for future rounds.
func (s *DOMMaximizer) UpdateObservedGrowth(id string, delta int) {
	if delta <= 0 {
		return
	}
	s.domDelta[id] = float64(delta)
}

// OnFailure bumps the visit count so a persistently failing candidate's
// weight decays via the 1/(1+visit_count) divisor.
func (s *DOMMaximizer) OnFailure(acted model.ActionCandidate) {
	s.visitCount[acted.ID()]++
}

// LazyLoadSelectors lists synthetic-click targets for lazy-load
// triggering. Nothing in this module fires them: neither RunLoop nor the
// browser controller scrolls or clicks these before or during the loop.
var LazyLoadSelectors = []string{
	"details:not([open])",
	"[aria-expanded=false]",
	"[data-toggle]",
}

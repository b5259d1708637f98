package strategy

import (
	"math/rand"

	"github.com/ias-lab/pasiphae/internal/model"
)

// DefaultWModel is w_model in spec §4.4 Strategy 3.
const DefaultWModel = 25.0

const (
	modelBaseWeight      = 1.0
	modelInputBaseWeight = 2.5
	modelColdStartFactor = 2.0
)

// ModelGuided implements Strategy 3 (spec §4.4): weights candidates by a
// state-independent successor model learned across the run.
type ModelGuided struct {
	rand   *rand.Rand
	model  *model.StateIndependentModel
	wModel float64
}

// NewModelGuided returns a ModelGuided selector backed by m, using weight
// wModel (0 selects the spec default of 25).
func NewModelGuided(m *model.StateIndependentModel, wModel float64, r *rand.Rand) *ModelGuided {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	if wModel == 0 {
		wModel = DefaultWModel
	}
	return &ModelGuided{rand: r, model: m, wModel: wModel}
}

func (s *ModelGuided) baseWeight(c model.ActionCandidate) float64 {
	if c.Kind == model.KindInput {
		return modelInputBaseWeight
	}
	return modelBaseWeight
}

// weight computes w_base * (1 + r_c * w_model), with unvisited candidates
// receiving base*2 as a cold-start bonus.
func (s *ModelGuided) weight(c model.ActionCandidate) float64 {
	base := s.baseWeight(c)
	if !s.model.IsExecuted(c.ID()) {
		base *= modelColdStartFactor
	}
	rC := s.model.SuccessorRate(c.ID(), s.model.IsExecuted)
	return base * (1 + rC*s.wModel)
}

// Select samples proportional to weight.
func (s *ModelGuided) Select(candidates []model.ActionCandidate) (model.ActionCandidate, bool) {
	if len(candidates) == 0 {
		return model.ActionCandidate{}, false
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

// OnSuccess observes the freshly discovered successor set and marks acted
// executed (spec §4.4: "After each successful action, the model observes
// the freshly discovered candidate set as c's successors ... marks c executed").
func (s *ModelGuided) OnSuccess(acted model.ActionCandidate, discovered []model.ActionCandidate) {
	ids := make([]string, len(discovered))
	for i, d := range discovered {
		ids[i] = d.ID()
	}
	s.model.Observe(acted.ID(), ids)
	s.model.MarkExecuted(acted.ID())
}

// OnFailure marks the candidate executed too, so a failing element stops
// soaking up the cold-start bonus forever.
func (s *ModelGuided) OnFailure(acted model.ActionCandidate) {
	s.model.MarkExecuted(acted.ID())
}

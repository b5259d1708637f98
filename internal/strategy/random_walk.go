package strategy

import (
	"math/rand"

	"github.com/ias-lab/pasiphae/internal/model"
)

// RandomWalk implements Strategy 1 (spec §4.4): a priority ladder biased
// toward unvisited code-bearing surfaces, falling back to uniform random.
type RandomWalk struct {
	rand    *rand.Rand
	visited map[string]bool
}

// NewRandomWalk returns a RandomWalk selector. r may be nil to use a
// default source.
func NewRandomWalk(r *rand.Rand) *RandomWalk {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return &RandomWalk{rand: r, visited: make(map[string]bool)}
}

func filterByKind(cs []model.ActionCandidate, kind model.CandidateKind, visited map[string]bool, wantVisited bool) []model.ActionCandidate {
	var out []model.ActionCandidate
	for _, c := range cs {
		if c.Kind != kind {
			continue
		}
		if visited[c.ID()] != wantVisited {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *RandomWalk) pick(cs []model.ActionCandidate) model.ActionCandidate {
	return cs[s.rand.Intn(len(cs))]
}

// Select implements the priority ladder: unvisited inputs > visited inputs
// (30% chance) > unvisited onclick > unvisited links > unvisited buttons >
// unvisited other > uniform random over all.
func (s *RandomWalk) Select(candidates []model.ActionCandidate) (model.ActionCandidate, bool) {
	if len(candidates) == 0 {
		return model.ActionCandidate{}, false
	}

	if unvisitedInputs := filterByKind(candidates, model.KindInput, s.visited, false); len(unvisitedInputs) > 0 {
		return s.pick(unvisitedInputs), true
	}
	if visitedInputs := filterByKind(candidates, model.KindInput, s.visited, true); len(visitedInputs) > 0 {
		if s.rand.Float64() < 0.30 {
			return s.pick(visitedInputs), true
		}
	}
	if onclick := filterByKind(candidates, model.KindOnclick, s.visited, false); len(onclick) > 0 {
		return s.pick(onclick), true
	}
	if links := filterByKind(candidates, model.KindLink, s.visited, false); len(links) > 0 {
		return s.pick(links), true
	}
	if buttons := filterByKind(candidates, model.KindButton, s.visited, false); len(buttons) > 0 {
		return s.pick(buttons), true
	}
	var unvisitedOther []model.ActionCandidate
	for _, c := range candidates {
		if c.Kind != model.KindInput && c.Kind != model.KindOnclick && c.Kind != model.KindLink &&
			c.Kind != model.KindButton && !s.visited[c.ID()] {
			unvisitedOther = append(unvisitedOther, c)
		}
	}
	if len(unvisitedOther) > 0 {
		return s.pick(unvisitedOther), true
	}

	return s.pick(candidates), true
}

// OnSuccess marks the acted candidate visited.
func (s *RandomWalk) OnSuccess(acted model.ActionCandidate, discovered []model.ActionCandidate) {
	s.visited[acted.ID()] = true
}

// OnFailure marks the acted candidate visited too, so the loop doesn't keep
// retrying the same dead element forever via the priority ladder.
func (s *RandomWalk) OnFailure(acted model.ActionCandidate) {
	s.visited[acted.ID()] = true
}

package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestRandomWalk_PrefersUnvisitedInputs(t *testing.T) {
	s := NewRandomWalk(rand.New(rand.NewSource(1)))
	candidates := []model.ActionCandidate{
		{Selector: "#link", Kind: model.KindLink},
		{Selector: "#input", Kind: model.KindInput},
	}
	c, ok := s.Select(candidates)
	assert.True(t, ok)
	assert.Equal(t, "#input", c.Selector)
}

func TestRandomWalk_FallsBackThroughLadder(t *testing.T) {
	s := NewRandomWalk(rand.New(rand.NewSource(1)))
	input := model.ActionCandidate{Selector: "#input", Kind: model.KindInput}
	s.OnSuccess(input, nil)

	onclick := model.ActionCandidate{Selector: "#onclick", Kind: model.KindOnclick}
	link := model.ActionCandidate{Selector: "#link", Kind: model.KindLink}
	button := model.ActionCandidate{Selector: "#button", Kind: model.KindButton}

	c, ok := s.Select([]model.ActionCandidate{input, onclick, link, button})
	assert.True(t, ok)
	assert.Equal(t, "#onclick", c.Selector)
}

func TestRandomWalk_UniformFallbackWhenAllVisited(t *testing.T) {
	s := NewRandomWalk(rand.New(rand.NewSource(1)))
	link := model.ActionCandidate{Selector: "#link", Kind: model.KindLink}
	s.OnSuccess(link, nil)

	c, ok := s.Select([]model.ActionCandidate{link})
	assert.True(t, ok)
	assert.Equal(t, "#link", c.Selector)
}

func TestRandomWalk_EmptyCandidatesReturnsFalse(t *testing.T) {
	s := NewRandomWalk(nil)
	_, ok := s.Select(nil)
	assert.False(t, ok)
}

func TestRandomWalk_OnFailureMarksVisited(t *testing.T) {
	s := NewRandomWalk(rand.New(rand.NewSource(1)))
	input := model.ActionCandidate{Selector: "#input", Kind: model.KindInput}
	s.OnFailure(input)
	assert.True(t, s.visited[input.ID()])
}

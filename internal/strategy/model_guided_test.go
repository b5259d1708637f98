package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestModelGuided_DefaultWModelAppliedWhenZero(t *testing.T) {
	s := NewModelGuided(model.NewStateIndependentModel(), 0, nil)
	assert.Equal(t, DefaultWModel, s.wModel)
}

func TestModelGuided_ColdStartBonusForUnexecutedCandidate(t *testing.T) {
	m := model.NewStateIndependentModel()
	s := NewModelGuided(m, 25.0, nil)
	c := model.ActionCandidate{Selector: "#a", Kind: model.KindButton}

	before := s.weight(c)
	m.MarkExecuted(c.ID())
	after := s.weight(c)
	assert.Greater(t, before, after)
}

func TestModelGuided_InputsWeightMoreThanButtons(t *testing.T) {
	m := model.NewStateIndependentModel()
	s := NewModelGuided(m, 25.0, nil)
	m.MarkExecuted("#input")
	m.MarkExecuted("#button")

	input := model.ActionCandidate{Selector: "#input", Kind: model.KindInput}
	button := model.ActionCandidate{Selector: "#button", Kind: model.KindButton}
	assert.Greater(t, s.weight(input), s.weight(button))
}

func TestModelGuided_SuccessorRateIncreasesWeight(t *testing.T) {
	m := model.NewStateIndependentModel()
	s := NewModelGuided(m, 25.0, nil)
	c := model.ActionCandidate{Selector: "#a", Kind: model.KindButton}
	m.MarkExecuted(c.ID())

	baseline := s.weight(c)

	m.Observe(c.ID(), []string{"#b"})
	boosted := s.weight(c)
	assert.Greater(t, boosted, baseline)
}

func TestModelGuided_OnSuccessObservesAndMarksExecuted(t *testing.T) {
	m := model.NewStateIndependentModel()
	s := NewModelGuided(m, 25.0, rand.New(rand.NewSource(1)))
	acted := model.ActionCandidate{Selector: "#a", Kind: model.KindButton}
	discovered := []model.ActionCandidate{{Selector: "#b", Kind: model.KindLink}}

	s.OnSuccess(acted, discovered)

	assert.True(t, m.IsExecuted(acted.ID()))
	entry, ok := m.Entry(acted.ID())
	assert.True(t, ok)
	assert.Equal(t, 1, entry.Successors["#b"])
}

func TestModelGuided_OnFailureMarksExecuted(t *testing.T) {
	m := model.NewStateIndependentModel()
	s := NewModelGuided(m, 25.0, nil)
	acted := model.ActionCandidate{Selector: "#a", Kind: model.KindButton}
	s.OnFailure(acted)
	assert.True(t, m.IsExecuted(acted.ID()))
}

func TestModelGuided_EmptyCandidatesReturnsFalse(t *testing.T) {
	s := NewModelGuided(model.NewStateIndependentModel(), 25.0, nil)
	_, ok := s.Select(nil)
	assert.False(t, ok)
}

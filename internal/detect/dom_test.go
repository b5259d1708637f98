package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestDOMAnalyze_Insufficient(t *testing.T) {
	r := DOM{State: &model.DOMState{}}.Analyze()
	assert.False(t, r.Detected)
}

func TestDOMAnalyze_TagGrowthBonus(t *testing.T) {
	state := &model.DOMState{
		PostClickMutations: 16, PostClickNodeChanges: 31,
		InitialTagCount: 10, FinalTagCount: 20,
	}
	r := DOM{State: state, ClickWindows: 1}.Analyze()
	assert.True(t, r.Detected)
	// base 0.70 (mp>=15,np>=30), tag ratio 2.0 >= 1.5 => +0.10 => 0.80
	assert.InDelta(t, 0.80, r.Confidence, 1e-9)
}

func TestDOMAnalyze_ClickWindowBonus(t *testing.T) {
	state := &model.DOMState{PostClickMutations: 5, PostClickNodeChanges: 10}
	r := DOM{State: state, ClickWindows: 3}.Analyze()
	// base 0.50 (mp>=5 or np>=10), no tag growth, +0.05 click-window bonus => 0.55
	assert.InDelta(t, 0.55, r.Confidence, 1e-9)
}

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestHistoryAnalyze_NoActivity(t *testing.T) {
	d := History{State: &model.HistoryState{}}
	r := d.Analyze()
	assert.False(t, r.Detected)
	assert.Equal(t, float64(0), r.Confidence)
}

func TestHistoryAnalyze_StrongRatio(t *testing.T) {
	state := &model.HistoryState{PushCount: 5, FullDocNavs: 1}
	r := History{State: state}.Analyze()
	assert.True(t, r.Detected)
	// base 0.85 for h>=5, ratio h/f = 5 >= 2 => +0.10, clamp 0.95
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
}

func TestHistoryAnalyze_WeakRatioPenalized(t *testing.T) {
	state := &model.HistoryState{PushCount: 1, FullDocNavs: 10}
	r := History{State: state}.Analyze()
	assert.True(t, r.Detected)
	// base 0.50 for h in [1,2], ratio 1/10 = 0.1 < 0.5 => -0.20 => 0.30
	assert.InDelta(t, 0.30, r.Confidence, 1e-9)
}

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func networkRequests(n int) []model.NetworkRequest {
	reqs := make([]model.NetworkRequest, n)
	return reqs
}

func TestNetworkAnalyze_NotEnoughPostClick(t *testing.T) {
	state := &model.NetworkState{PostClick: networkRequests(1)}
	r := Network{State: state}.Analyze()
	assert.False(t, r.Detected)
}

func TestNetworkAnalyze_JSONBonus(t *testing.T) {
	state := &model.NetworkState{PostClick: networkRequests(6), JSONCount: 5}
	r := Network{State: state}.Analyze()
	assert.True(t, r.Detected)
	// base 0.70 for p in [5,9], +0.10 json bonus => 0.80
	assert.InDelta(t, 0.80, r.Confidence, 1e-9)
}

func TestNetworkAnalyze_ManyDocumentRequestsPenalized(t *testing.T) {
	state := &model.NetworkState{PostClick: networkRequests(10), Document: networkRequests(3)}
	r := Network{State: state}.Analyze()
	// base 0.85, doc>=3 => -0.15, p/doc=10/3=3.33 < 5 no bonus => 0.70
	assert.InDelta(t, 0.70, r.Confidence, 1e-9)
}

package discovery

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestDecode_ParsesCandidatesAndClickableState(t *testing.T) {
	raw := `{
		"candidates": [
			{"selector":"#email","kind":"input","label":"Email","inputType":"email","x":1,"y":2,"w":3,"h":4},
			{"selector":"a.cta","kind":"link","label":"Go","href":"https://a.test/go"}
		],
		"realLinks": 12,
		"fakeClickables": 2,
		"routerLinkPatterns": 5,
		"frameworkMatched": true
	}`

	snap, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, snap.Candidates, 2)

	assert.Equal(t, "#email", snap.Candidates[0].Selector)
	assert.Equal(t, model.KindInput, snap.Candidates[0].Kind)
	assert.Equal(t, model.Rect{X: 1, Y: 2, Width: 3, Height: 4}, snap.Candidates[0].Rect)

	assert.Equal(t, 12, snap.Clickable.RealLinks)
	assert.Equal(t, 2, snap.Clickable.FakeClickables)
	assert.Equal(t, 5, snap.Clickable.RouterLinkPatterns)
	assert.True(t, snap.Clickable.FrameworkMatched)
}

func TestDecode_TruncatesLabelTo120Runes(t *testing.T) {
	longLabel := strings.Repeat("x", 200)
	raw := `{"candidates":[{"selector":"#a","kind":"button","label":"` + longLabel + `"}]}`

	snap, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, snap.Candidates, 1)
	assert.Len(t, snap.Candidates[0].Label, 120)
}

func TestDecode_BoundsCandidatesAtMaxCandidates(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"candidates":[`)
	for i := 0; i < MaxCandidates+10; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"selector":"#a` + strconv.Itoa(i) + `","kind":"button"}`)
	}
	sb.WriteString(`]}`)

	snap, err := Decode(sb.String())
	require.NoError(t, err)
	assert.Len(t, snap.Candidates, MaxCandidates)
}

func TestDecode_InvalidJSONReturnsError(t *testing.T) {
	_, err := Decode("not json")
	assert.Error(t, err)
}

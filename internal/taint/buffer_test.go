package taint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func TestBuffer_DedupsIdenticalFlow(t *testing.T) {
	b := NewBuffer()
	flow := model.TaintFlow{SinkName: "innerHTML", SourceNames: []string{"location.hash"}, LocationURL: "https://a.test/"}

	_, added1 := b.AddFlow(flow)
	_, added2 := b.AddFlow(flow)

	assert.True(t, added1)
	assert.False(t, added2)
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_DedupsSameRawEventDifferentLocationURL(t *testing.T) {
	b := NewBuffer()
	a := model.TaintFlow{SinkName: "eval", SourceNames: []string{"x"}, LocationURL: "https://a.test/"}
	later := a
	later.LocationURL = "https://a.test/#changed" // same source/sink/propagation-length, different url

	_, added1 := b.AddFlow(a)
	_, added2 := b.AddFlow(later)

	assert.True(t, added1)
	assert.False(t, added2, "raw dedup key (source,sink,propagation_length) should collapse this before the canonical key even applies")
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_DistinctSinksAreNotDeduped(t *testing.T) {
	b := NewBuffer()
	_, added1 := b.AddFlow(model.TaintFlow{SinkName: "innerHTML", SourceNames: []string{"x"}})
	_, added2 := b.AddFlow(model.TaintFlow{SinkName: "eval", SourceNames: []string{"x"}})

	assert.True(t, added1)
	assert.True(t, added2)
	assert.Equal(t, 2, b.Len())
}

func TestBuffer_FlowsPreservesInsertionOrder(t *testing.T) {
	b := NewBuffer()
	b.AddFlow(model.TaintFlow{SinkName: "a"})
	b.AddFlow(model.TaintFlow{SinkName: "b"})
	b.AddFlow(model.TaintFlow{SinkName: "c"})

	flows := b.Flows()
	assert.Equal(t, []string{"a", "b", "c"}, []string{flows[0].SinkName, flows[1].SinkName, flows[2].SinkName})
}

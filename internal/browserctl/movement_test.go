package browserctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBezierCurve_EndpointsMatchStartAndEnd(t *testing.T) {
	start := point{x: 0, y: 0}
	control1 := point{x: 10, y: 40}
	control2 := point{x: 30, y: 40}
	end := point{x: 100, y: 0}

	at0 := bezierCurve(0, start, control1, control2, end)
	at1 := bezierCurve(1, start, control1, control2, end)

	assert.Equal(t, start, at0)
	assert.Equal(t, end, at1)
}

func TestBezierCurve_MidpointLiesBetweenEndpoints(t *testing.T) {
	start := point{x: 0, y: 0}
	control1 := point{x: 0, y: 0}
	control2 := point{x: 100, y: 0}
	end := point{x: 100, y: 0}

	mid := bezierCurve(0.5, start, control1, control2, end)
	assert.Greater(t, mid.x, start.x)
	assert.Less(t, mid.x, end.x)
}

package browserctl

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// movementOptions tunes the human-like mouse path used before every click
// (spec §4.4 doesn't mandate this, but a straight-line teleport to the
// element is exactly the kind of bot tell the detector itself would flag on
// someone else's site). Adapted from the teacher's MovementOptions
// (pkg/browser/movement.go), trimmed to the step-delay range and
// acceleration knobs this package needs.
type movementOptions struct {
	minStep, maxStep time.Duration
	acceleration     float64
}

var defaultMovement = movementOptions{minStep: 10 * time.Millisecond, maxStep: 25 * time.Millisecond, acceleration: 0.7}

type point struct{ x, y float64 }

func bezierCurve(t float64, start, control1, control2, end point) point {
	t2 := t * t
	t3 := t2 * t
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	return point{
		x: mt3*start.x + 3*mt2*t*control1.x + 3*mt*t2*control2.x + t3*end.x,
		y: mt3*start.y + 3*mt2*t*control1.y + 3*mt*t2*control2.y + t3*end.y,
	}
}

// isInteractable reports whether el is visible and occupies screen space.
func isInteractable(el *rod.Element) bool {
	if el == nil {
		return false
	}
	visible, err := el.Visible()
	if err != nil || !visible {
		return false
	}
	shape, err := el.Shape()
	if err != nil || shape == nil || len(shape.Quads) == 0 {
		return false
	}
	quad := shape.Quads[0]
	if len(quad) < 8 {
		return false
	}
	width := quad[2] - quad[0]
	height := quad[5] - quad[1]
	return width > 0 && height > 0
}

// moveToElement walks the mouse to el's center along a cubic bezier curve
// with per-step jitter, instead of warping directly there.
func moveToElement(page *rod.Page, el *rod.Element, opts movementOptions) error {
	shape, err := el.Shape()
	if err != nil || len(shape.Quads) == 0 {
		return err
	}
	quad := shape.Quads[0]
	if len(quad) < 8 {
		return nil
	}
	centerX := (quad[0] + quad[2] + quad[4] + quad[6]) / 4
	centerY := (quad[1] + quad[3] + quad[5] + quad[7]) / 4

	pos := page.Mouse.Position()
	start := point{x: pos.X, y: pos.Y}
	target := point{x: centerX, y: centerY}

	distance := math.Sqrt(math.Pow(target.x-start.x, 2) + math.Pow(target.y-start.y, 2))
	offset := distance * 0.4
	control1 := point{x: start.x + rand.Float64()*offset, y: start.y + rand.Float64()*offset}
	control2 := point{x: target.x - rand.Float64()*offset, y: target.y - rand.Float64()*offset}

	steps := 12 + rand.Intn(8)
	for step := 0; step <= steps; step++ {
		t := math.Pow(float64(step)/float64(steps), opts.acceleration)
		p := bezierCurve(t, start, control1, control2, target)
		if err := page.Mouse.MoveTo(proto.NewPoint(p.x, p.y)); err != nil {
			return err
		}
		time.Sleep(opts.minStep + time.Duration(rand.Int63n(int64(opts.maxStep-opts.minStep+1))))
	}
	return nil
}

package model

import "time"

// ClickWindow is a half-open measurement interval [Start, End) labeled with
// the candidate whose action triggered it. Windows never overlap: opening a
// new window implicitly closes the previous one, and windows never span the
// baseline phase.
type ClickWindow struct {
	Label string
	Start time.Time
	End   time.Time
}

// Duration returns the window's length. While a window is open (End is the
// zero value) duration is measured against now.
func (w ClickWindow) Duration() time.Duration {
	if w.End.IsZero() {
		return time.Since(w.Start)
	}
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls within the half-open interval [Start,End).
// An open window (End zero) contains any t >= Start.
func (w ClickWindow) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.End.IsZero() {
		return true
	}
	return t.Before(w.End)
}

// ClickWindowTracker owns the single open-or-closed window invariant for one
// run: opening a window always closes whatever was previously open.
type ClickWindowTracker struct {
	current *ClickWindow
	closed  []ClickWindow
}

// Open closes the current window (if any) and starts a new one labeled label.
// It returns the just-closed window, or nil if none was open.
func (t *ClickWindowTracker) Open(label string, now time.Time) *ClickWindow {
	prev := t.Close(now)
	t.current = &ClickWindow{Label: label, Start: now}
	return prev
}

// Close ends the currently open window, if any, and records it. It is a
// no-op returning nil when no window is open.
func (t *ClickWindowTracker) Close(now time.Time) *ClickWindow {
	if t.current == nil {
		return nil
	}
	t.current.End = now
	closed := *t.current
	t.closed = append(t.closed, closed)
	t.current = nil
	return &closed
}

// Current returns the currently open window, or nil.
func (t *ClickWindowTracker) Current() *ClickWindow {
	return t.current
}

// Closed returns every window closed so far, in close order.
func (t *ClickWindowTracker) Closed() []ClickWindow {
	return t.closed
}

// Count returns the number of windows recorded (closed) so far.
func (t *ClickWindowTracker) Count() int {
	return len(t.closed)
}

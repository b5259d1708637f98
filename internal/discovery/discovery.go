// Package discovery implements Candidate Discovery (spec §4.3): a single
// in-page traversal producing a bounded list of visible, same-origin
// interactive elements with stable selectors, plus the clickable-pattern
// snapshot the Clickable detector consumes.
package discovery

import (
	"encoding/json"
	"fmt"

	"github.com/ias-lab/pasiphae/internal/model"
)

// MaxCandidates bounds the discovery result after slicing (spec §4.3).
const MaxCandidates = 50

// rawCandidate mirrors the JSON shape the in-page traversal script returns.
type rawCandidate struct {
	Selector   string  `json:"selector"`
	Kind       string  `json:"kind"`
	Label      string  `json:"label"`
	InputType  string  `json:"inputType"`
	Href       string  `json:"href"`
	HasOnclick bool    `json:"hasOnclick"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
}

type rawSnapshot struct {
	Candidates         []rawCandidate `json:"candidates"`
	RealLinks          int            `json:"realLinks"`
	FakeClickables     int            `json:"fakeClickables"`
	RouterLinkPatterns int            `json:"routerLinkPatterns"`
	FrameworkMatched   bool           `json:"frameworkMatched"`
}

// Snapshot is the decoded result of one discovery round.
type Snapshot struct {
	Candidates []model.ActionCandidate
	Clickable  model.ClickableState
}

// Decode parses the JSON string returned by TraversalScript into a Snapshot,
// converting each kind string (already classified in-page) to a
// model.CandidateKind and applying the MaxCandidates bound.
func Decode(jsonResult string) (Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal([]byte(jsonResult), &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode discovery snapshot: %w", err)
	}
	candidates := make([]model.ActionCandidate, 0, len(raw.Candidates))
	for _, rc := range raw.Candidates {
		if len(candidates) >= MaxCandidates {
			break
		}
		candidates = append(candidates, model.ActionCandidate{
			Selector:   rc.Selector,
			Kind:       model.CandidateKind(rc.Kind),
			Label:      model.TruncateLabel(rc.Label, 120),
			InputType:  rc.InputType,
			Href:       rc.Href,
			HasOnclick: rc.HasOnclick,
			Rect:       model.Rect{X: rc.X, Y: rc.Y, Width: rc.W, Height: rc.H},
		})
	}
	return Snapshot{
		Candidates: candidates,
		Clickable: model.ClickableState{
			RealLinks:          raw.RealLinks,
			FakeClickables:     raw.FakeClickables,
			RouterLinkPatterns: raw.RouterLinkPatterns,
			FrameworkMatched:   raw.FrameworkMatched,
		},
	}, nil
}

// TraversalScript is evaluated in-page to produce the JSON snapshot Decode
// consumes. Visibility and selector-generation rules follow spec §4.3;
// the clickable-pattern counts are collected in the same pass to avoid a
// second DOM walk (SPEC_FULL.md §4.5 ADDED note).
const TraversalScript = `
(function() {
    function cssEscape(s) {
        return String(s).replace(/[^a-zA-Z0-9_\-]/g, function(c) {
            return '\\' + c;
        });
    }

    function isVisible(el) {
        const rect = el.getBoundingClientRect();
        if (rect.width <= 0 || rect.height <= 0) return false;
        const style = window.getComputedStyle(el);
        if (style.display === 'none' || style.visibility === 'hidden') return false;
        if (parseFloat(style.opacity) < 0.1) return false;
        if (rect.top > window.innerHeight * 2) return false;
        return true;
    }

    function isSameOrigin(href) {
        try {
            const u = new URL(href, location.href);
            return u.origin === location.origin;
        } catch (e) {
            return false;
        }
    }

    function excludedHref(href) {
        if (!href) return false;
        return /^(mailto:|tel:|javascript:)/i.test(href) || !isSameOrigin(href);
    }

    function selectorFor(el, tag) {
        if (el.id) return '#' + cssEscape(el.id);
        if (el.name) return tag + '[name="' + el.name.replace(/"/g, '\\"') + '"]';
        const text = (el.textContent || '').trim();
        if (text && (tag === 'a' || tag === 'button')) {
            return tag + ':has-text("' + text.slice(0, 40).replace(/"/g, '\\"') + '")';
        }
        if (el.className && typeof el.className === 'string') {
            const first = el.className.trim().split(/\s+/)[0];
            if (first) return tag + '.' + cssEscape(first);
        }
        const siblings = Array.from(el.parentElement ? el.parentElement.children : []).filter(function(s) {
            return s.tagName === el.tagName;
        });
        const idx = siblings.indexOf(el) + 1;
        return tag + ':nth-of-type(' + idx + ')';
    }

    function classify(el, tag) {
        const role = (el.getAttribute('role') || '').toLowerCase();
        if (tag === 'input' || tag === 'textarea') return 'input';
        if (tag === 'select') return 'select';
        if (tag === 'button' || role === 'button') return 'button';
        if (tag === 'a' || role === 'link') return 'link';
        if (el.hasAttribute('onclick')) return 'onclick';
        return 'unknown';
    }

    const interactiveSelectors = 'input, textarea, select, button, a, [onclick], [role=button], [role=link]';
    const elements = Array.from(document.querySelectorAll(interactiveSelectors));
    const candidates = [];
    for (const el of elements) {
        if (el.disabled) continue;
        const tag = el.tagName.toLowerCase();
        if (tag === 'a' && excludedHref(el.getAttribute('href'))) continue;
        if (!isVisible(el)) continue;
        const rect = el.getBoundingClientRect();
        candidates.push({
            selector: selectorFor(el, tag),
            kind: classify(el, tag),
            label: (el.textContent || el.value || el.getAttribute('aria-label') || '').trim().slice(0, 120),
            inputType: tag === 'input' ? (el.getAttribute('type') || 'text') : '',
            href: tag === 'a' ? el.href : '',
            hasOnclick: el.hasAttribute('onclick'),
            x: rect.x, y: rect.y, w: rect.width, h: rect.height,
        });
        if (candidates.length >= 50) break;
    }

    let realLinks = 0, fakeClickables = 0, routerLike = 0;
    const allLinks = document.querySelectorAll('a');
    for (const a of allLinks) {
        const href = a.getAttribute('href') || '';
        if (href.startsWith('#') || href === '' || /^javascript:/i.test(href)) {
            routerLike++;
        } else if (isSameOrigin(a.href)) {
            realLinks++;
        }
    }
    const fakeClickableSelectors = '[onclick]:not(a):not(button), [role=button]:not(button), [data-href], [data-link]';
    fakeClickables = document.querySelectorAll(fakeClickableSelectors).length;
    for (const el of document.querySelectorAll('*')) {
        if (window.getComputedStyle(el).cursor === 'pointer' && el.tagName !== 'A' && el.tagName !== 'BUTTON') {
            fakeClickables++;
        }
    }

    const frameworkMatched = !!(
        window.__REACT_DEVTOOLS_GLOBAL_HOOK__ || document.querySelector('[data-reactroot]') ||
        window.__vue__ || window.Vue || document.querySelector('[data-v-app]') ||
        window.getAllAngularRootElements || document.querySelector('[ng-version]')
    );

    return JSON.stringify({
        candidates: candidates,
        realLinks: realLinks,
        fakeClickables: fakeClickables,
        routerLinkPatterns: routerLike,
        frameworkMatched: frameworkMatched,
    });
})();
`

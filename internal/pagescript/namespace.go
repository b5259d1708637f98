package pagescript

import "fmt"

// namespaceScript initializes window.__analysis before any hook bundle
// runs. It is itself guarded by window.__analysisReady so that reinjecting
// the whole payload into an already-instrumented document is a no-op except
// for bumping the injection counter (used to test the round-trip/idempotence
// property that reinjection is detectable only via that counter).
const namespaceScriptTemplate = `
(function() {
    if (!window.__analysis) {
        window.__analysis = {
            injections: 0,
            history: {ready: false, counts: {}, changes: []},
            title: {ready: false, entries: []},
            dom: {
                ready: false,
                baselineEnd: Date.now() + %d,
                baselineMutations: 0,
                baselineNodeChanges: 0,
                postClickMutations: 0,
                postClickNodeChanges: 0,
                largeMutations: [],
                initialTagCount: 0,
                finalTagCount: 0,
            },
            clickWindow: {current: null, closed: []},
            taint: {ready: false, queue: [], nativeAvailable: %t},
        };
    }
    window.__analysis.injections++;
    if (window.__analysisReady) return;
    window.__analysisReady = true;
})();
`

// RenderNamespace renders the namespace bootstrap with the configured
// baseline duration (milliseconds) and whether a native taint-capable
// browser binding is expected to be available.
func RenderNamespace(baselineDurationMS int, nativeTaintAvailable bool) string {
	return fmt.Sprintf(namespaceScriptTemplate, baselineDurationMS, nativeTaintAvailable)
}

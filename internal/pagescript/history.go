package pagescript

// historyHookScript wraps pushState/replaceState and listens for popstate,
// appending to a bounded change log. Grounded on the teacher's idempotent
// installer pattern in pkg/browser/taint_tracking.go (GetTaintTrackingScript).
const historyHookScript = `
(function() {
    if (window.__analysis.history.ready) return;
    const ns = window.__analysis.history;

    function record(kind, newURL, fromURL) {
        ns.counts[kind] = (ns.counts[kind] || 0) + 1;
        ns.changes.push({kind: kind, newURL: newURL, fromURL: fromURL, ts: Date.now()});
        if (ns.changes.length > 200) ns.changes.shift();
    }

    const origPush = history.pushState;
    history.pushState = function(state, title, url) {
        const from = location.href;
        const ret = origPush.apply(this, arguments);
        record('pushState', url ? String(url) : location.href, from);
        return ret;
    };

    const origReplace = history.replaceState;
    history.replaceState = function(state, title, url) {
        const from = location.href;
        const ret = origReplace.apply(this, arguments);
        record('replaceState', url ? String(url) : location.href, from);
        return ret;
    };

    window.addEventListener('popstate', function() {
        record('popstate', location.href, ns.lastURL || location.href);
    });
    ns.lastURL = location.href;

    ns.ready = true;
})();
`

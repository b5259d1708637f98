package pagescript

// clickWindowScript exposes startClickWindow/endClickWindow on the
// namespace. Opening a window always closes any window already open,
// matching the ClickWindow invariant that windows never overlap.
const clickWindowScript = `
(function() {
    const ns = window.__analysis.clickWindow;

    function closeCurrent(now) {
        if (!ns.current) return null;
        ns.current.end = now;
        ns.closed.push(ns.current);
        const closed = ns.current;
        ns.current = null;
        return closed;
    }

    window.__analysis.startClickWindow = function(label) {
        const now = Date.now();
        closeCurrent(now);
        ns.current = {label: label, start: now, end: null};
    };

    window.__analysis.endClickWindow = function() {
        closeCurrent(Date.now());
    };
})();
`

package pagescript

// domHookScript installs a mutation observer on document.body, filtering
// mutations through an ignore-predicate before counting them into one of
// two buckets: baseline (before baselineEnd) or post-click (everything
// after, whether or not a click window is open). No per-click-window
// mutation counts are kept; the open window's label is recorded only on
// large-mutation samples.
const domHookScript = `
(function() {
    if (window.__analysis.dom.ready) return;
    const ns = window.__analysis.dom;

    const ignoreTags = new Set(['script', 'style', 'iframe', 'noscript', 'link']);
    const ignoreTokens = ['cookie', 'consent', 'banner', 'gdpr', 'overlay', 'modal', 'ad', 'tracking', 'analytics'];

    function tokenMatch(el) {
        let node = el;
        for (let depth = 0; node && depth <= 3; depth++) {
            const id = (node.id || '').toLowerCase();
            const cls = (node.className && typeof node.className === 'string') ? node.className.toLowerCase() : '';
            for (const tok of ignoreTokens) {
                if (id.includes(tok) || cls.includes(tok)) return true;
            }
            node = node.parentElement;
        }
        return false;
    }

    function shouldIgnore(node) {
        if (!node || node.nodeType !== 1) return false;
        const tag = node.tagName ? node.tagName.toLowerCase() : '';
        if (ignoreTags.has(tag)) return true;
        return tokenMatch(node);
    }

    function countTags() {
        return document.getElementsByTagName('*').length;
    }
    ns.initialTagCount = countTags();
    ns.finalTagCount = ns.initialTagCount;

    const observer = new MutationObserver(function(mutations) {
        const now = Date.now();
        const cw = window.__analysis.clickWindow;
        for (const m of mutations) {
            let added = 0, removed = 0;
            for (const n of m.addedNodes) { if (!shouldIgnore(n)) added++; }
            for (const n of m.removedNodes) { if (!shouldIgnore(n)) removed++; }
            if (added === 0 && removed === 0) continue;

            const baseline = now < ns.baselineEnd;
            if (baseline) {
                ns.baselineMutations++;
                ns.baselineNodeChanges += added + removed;
            } else {
                ns.postClickMutations++;
                ns.postClickNodeChanges += added + removed;
            }
            if (added + removed >= 5 && ns.largeMutations.length < 30) {
                ns.largeMutations.push({added: added, removed: removed, phase: baseline ? 'baseline' : 'post-click', ts: now, clickWindow: cw.current ? cw.current.label : null});
            }
        }
        ns.finalTagCount = countTags();
    });
    observer.observe(document.body, {childList: true, subtree: true});

    ns.ready = true;
})();
`

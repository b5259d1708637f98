package pagescript

// titleHookScript installs a mutation observer on <title> and appends a new
// (title, url, timestamp) whenever the live title differs from the last
// recorded entry. History survives reinjection because state lives on the
// window-scoped __analysis namespace, never reset by the installer guard.
const titleHookScript = `
(function() {
    if (window.__analysis.title.ready) return;
    const ns = window.__analysis.title;

    function record() {
        const t = document.title;
        const last = ns.entries.length ? ns.entries[ns.entries.length - 1] : null;
        if (last && last.title === t) return;
        ns.entries.push({title: t, url: location.href, ts: Date.now()});
    }
    record();

    function attach() {
        const titleEl = document.querySelector('title');
        if (!titleEl) return;
        const observer = new MutationObserver(record);
        observer.observe(titleEl, {childList: true, characterData: true, subtree: true});
    }
    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', attach, {once: true});
    } else {
        attach();
    }

    ns.ready = true;
})();
`

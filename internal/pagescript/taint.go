package pagescript

// pseudoTaintScript is installed when the browser has no native taint
// engine. It wraps a handful of dangerous sinks and, for every string value
// that reaches one (no marker matching is done), emits a canonical finding
// shape either via the host binding report_taint or, as a fallback, onto the
// window-scoped queue for host-side polling. Grounded on the teacher's
// GetTaintTrackingScript (pkg/browser/taint_tracking.go) sink-wrapping
// idiom, extended per spec §4.2/§9 with the canonical finding envelope and
// the queue fallback.
const pseudoTaintScript = `
(function() {
    if (window.__analysis.taint.ready) return;
    const ns = window.__analysis.taint;

    function emit(sink, value, sources) {
        const finding = {
            subframe: window !== window.top,
            loc: location.href,
            parentloc: (window !== window.top && document.referrer) ? document.referrer : null,
            referrer: document.referrer,
            script: (new Error()).stack || '',
            line: 0,
            str: String(value).slice(0, 1000),
            sink: sink,
            taintChain: [],
            sources: sources || [],
            domain: location.hostname,
            url: location.href,
            timestampMs: Date.now(),
        };
        if (typeof window.report_taint === 'function') {
            try { window.report_taint(finding); return; } catch (e) {}
        }
        ns.queue.push(finding);
        if (ns.queue.length > 500) ns.queue.shift();
    }

    function sourcesFor(value) {
        const sources = [];
        const v = String(value);
        if (v.includes(location.hash) && location.hash) sources.push('location.hash');
        if (v.includes(location.search) && location.search) sources.push('location.search');
        if (document.referrer && v.includes(document.referrer)) sources.push('document.referrer');
        return sources;
    }

    function wrapSetter(proto, prop, sinkName) {
        const desc = Object.getOwnPropertyDescriptor(proto, prop);
        if (!desc || !desc.set) return;
        const orig = desc.set;
        Object.defineProperty(proto, prop, {
            set: function(value) {
                if (typeof value === 'string') emit(sinkName, value, sourcesFor(value));
                return orig.call(this, value);
            },
            configurable: true,
        });
    }
    wrapSetter(Element.prototype, 'innerHTML', 'innerHTML');
    wrapSetter(Element.prototype, 'outerHTML', 'outerHTML');

    const origWrite = document.write;
    document.write = function(...args) {
        for (const a of args) { if (typeof a === 'string') emit('document.write', a, sourcesFor(a)); }
        return origWrite.apply(this, args);
    };
    const origWriteln = document.writeln;
    document.writeln = function(...args) {
        for (const a of args) { if (typeof a === 'string') emit('document.writeln', a, sourcesFor(a)); }
        return origWriteln.apply(this, args);
    };

    const origEval = window.eval;
    window.eval = function(code) {
        if (typeof code === 'string') emit('eval', code, sourcesFor(code));
        return origEval.call(this, code);
    };

    const origSetTimeout = window.setTimeout;
    window.setTimeout = function(fn, delay, ...args) {
        if (typeof fn === 'string') emit('setTimeout', fn, sourcesFor(fn));
        return origSetTimeout.call(this, fn, delay, ...args);
    };
    const origSetInterval = window.setInterval;
    window.setInterval = function(fn, delay, ...args) {
        if (typeof fn === 'string') emit('setInterval', fn, sourcesFor(fn));
        return origSetInterval.call(this, fn, delay, ...args);
    };

    if (location.assign) {
        const origAssign = location.assign.bind(location);
        location.assign = function(url) {
            if (typeof url === 'string') emit('location.assign', url, sourcesFor(url));
            return origAssign(url);
        };
    }
    if (location.replace) {
        const origReplace = location.replace.bind(location);
        location.replace = function(url) {
            if (typeof url === 'string') emit('location.replace', url, sourcesFor(url));
            return origReplace(url);
        };
    }

    ns.ready = true;
})();
`

// TaintQueuePollScript reads and drains the fallback queue, for use when
// the host binding could not be installed (polling fallback, spec §9).
const TaintQueuePollScript = `
(function() {
    const ns = window.__analysis.taint;
    const drained = ns.queue;
    ns.queue = [];
    return drained;
})();
`

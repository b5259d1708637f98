// Package browserctl implements the Browser Controller (spec §4.1):
// process launch, per-run context creation, init-script ordering, host↔page
// bindings, and the network/console/frame-navigation plumbing the detectors
// and taint parser consume. Grounded on the teacher's pkg/browser launcher
// and dialog idioms (go-rod/rod, go-rod/stealth).
package browserctl

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
)

// NewLauncher builds a launcher.Launcher from Options, following the
// teacher's GetBrowserLauncher chain (pkg/browser/launcher.go): headless
// flag, hardening flags, optional proxy.
func NewLauncher(opts config.Options) *launcher.Launcher {
	l := launcher.New().
		Headless(opts.Headless).
		Set("allow-running-insecure-content").
		Set("disable-infobars").
		Set("disable-extensions").
		Set("no-sandbox")

	if opts.Proxy != "" {
		l = l.Proxy(opts.Proxy)
	}
	if opts.FoxhoundPath != "" {
		l = l.Bin(opts.FoxhoundPath)
	} else if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	}
	return l
}

// LaunchBrowser starts a browser process per opts, resolving the executable
// in the order spec §4.1 requires: foxhound_path (taint build) → a standard
// Chromium/Chrome the launcher itself locates → BrowserStartupError.
func LaunchBrowser(opts config.Options) (*rod.Browser, error) {
	l := NewLauncher(opts)
	controlURL, err := l.Launch()
	if err != nil {
		path := opts.FoxhoundPath
		if path == "" {
			path = opts.ChromePath
		}
		return nil, &model.BrowserStartupError{Path: path, Err: err}
	}
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, &model.BrowserStartupError{Path: controlURL, Err: err}
	}
	return b, nil
}

// LaunchBrowserWithTimeout is LaunchBrowser bounded by a wall-clock timeout,
// grounded on the teacher's NewBrowserWithTimeout (pkg/browser/launcher.go).
func LaunchBrowserWithTimeout(opts config.Options, timeout time.Duration) (*rod.Browser, error) {
	type result struct {
		browser *rod.Browser
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := LaunchBrowser(opts)
		ch <- result{b, err}
	}()
	select {
	case res := <-ch:
		return res.browser, res.err
	case <-time.After(timeout):
		return nil, &model.BrowserStartupError{Err: fmt.Errorf("timeout reached while launching browser")}
	}
}

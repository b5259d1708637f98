package browserctl

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/pagescript"
)

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	defaultViewportW = 1366
	defaultViewportH = 768
	defaultLocale    = "en-US"
)

// Context wraps one run's browser page plus the injected namespace state.
// A fresh Context is created per URL (spec §3 Ownership, §5 "fresh context
// per URL").
type Context struct {
	Browser *rod.Browser
	Page    *rod.Page

	injections int
}

// NewContext creates a fresh page (not an incognito context), applies the custom context
// setup (user-agent, viewport, locale, ignore-HTTPS-errors, extra headers),
// and registers the init-script bundle before any navigation occurs,
// satisfying the ordering invariant (spec §4.1).
func NewContext(b *rod.Browser, opts config.Options) (*Context, error) {
	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, &model.BrowserStartupError{Err: fmt.Errorf("create page: %w", err)}
	}

	stealthPage, err := stealth.Page(b)
	if err == nil {
		page = stealthPage
	}

	if err := proto.SecuritySetIgnoreCertificateErrors{Ignore: true}.Call(page); err != nil {
		// non-fatal: cert errors just surface as navigation warnings later
		_ = err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  defaultViewportW,
		Height: defaultViewportH,
	}); err != nil {
		return nil, &model.ContextDeadError{Detail: fmt.Sprintf("set viewport: %v", err)}
	}

	headers := make([]string, 0, 2*(len(config.ExtraHeaders)+1))
	for k, v := range config.ExtraHeaders {
		headers = append(headers, k, v)
	}
	if _, err := page.SetExtraHeaders(headers); err != nil {
		return nil, &model.ContextDeadError{Detail: fmt.Sprintf("set extra headers: %v", err)}
	}

	if err := proto.EmulationSetLocaleOverride{Locale: defaultLocale}.Call(page); err != nil {
		_ = err // locale override best-effort; absent on some CDP builds
	}

	if err := proto.NetworkSetUserAgentOverride{UserAgent: defaultUserAgent}.Call(page); err != nil {
		_ = err
	}

	baselineMS := int(opts.BaselineDuration / time.Millisecond)
	nativeTaint := opts.FoxhoundPath != ""
	bundle := pagescript.Bundle(baselineMS, nativeTaint)
	if _, err := page.EvalOnNewDocument(bundle); err != nil {
		return nil, &model.ContextDeadError{Detail: fmt.Sprintf("register init script: %v", err)}
	}

	return &Context{Browser: b, Page: page, injections: 1}, nil
}

// Close releases the page. Called on every exit path by the run coordinator.
func (c *Context) Close() error {
	if c.Page == nil {
		return nil
	}
	return c.Page.Close()
}

package browserctl

import (
	"github.com/go-rod/rod/lib/proto"
)

// AutoAcceptDialogs dismisses any JS dialog (alert/confirm/prompt) the page
// raises, so a strategy action is never blocked on a blocking dialog.
// Grounded on the teacher's CloseAllJSDialogs (pkg/browser/dialogs.go).
func (c *Context) AutoAcceptDialogs() {
	go c.Page.EachEvent(func(e *proto.PageJavascriptDialogOpening) (stop bool) {
		_ = proto.PageHandleJavaScriptDialog{Accept: true, PromptText: ""}.Call(c.Page)
		return false
	})()
}

// DismissCookieBanner attempts a best-effort click on a small fixed set of
// common cookie-consent selectors, returning whether one was found and
// clicked. Findings produced after a successful dismissal are flagged via
// Finding.CookieBannerAccepted (spec §3).
func (c *Context) DismissCookieBanner() bool {
	selectors := []string{
		`#onetrust-accept-btn-handler`,
		`.cc-allow`,
		`button[aria-label="Accept all"]`,
		`button[aria-label="Accept cookies"]`,
		`[data-testid="uc-accept-all-button"]`,
	}
	for _, sel := range selectors {
		el, err := c.Page.Timeout(500_000_000).Element(sel) // 500ms
		if err != nil || el == nil {
			continue
		}
		if err := el.Click("left", 1); err == nil {
			return true
		}
	}
	return false
}

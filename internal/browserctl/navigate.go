package browserctl

import (
	"fmt"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/ias-lab/pasiphae/internal/model"
)

// Navigate implements spec §4.1's Navigation contract: success iff the
// final response status < 400 and the document reaches the requested
// ready-state within timeout. HTTP >= 400 is logged but still returns
// success — the analyzer can still learn from an error page.
func (c *Context) Navigate(url string, timeout time.Duration) (status int, err error) {
	wait := c.Page.Timeout(timeout).WaitNavigation(proto.PageLifecycleEventNameLoad)

	status = 0
	stopListener := c.Page.Timeout(timeout).EachEvent(func(e *proto.NetworkResponseReceived) (stop bool) {
		if e.Type == proto.NetworkResourceTypeDocument && status == 0 {
			status = e.Response.Status
		}
		return false
	})
	go stopListener()

	if navErr := c.Page.Timeout(timeout).Navigate(url); navErr != nil {
		return 0, &model.NavigationFailureError{URL: url, Err: navErr}
	}
	wait()

	if err := c.Page.Timeout(timeout).WaitLoad(); err != nil {
		return status, &model.NavigationTimeoutError{URL: url, Timeout: timeout.String()}
	}

	if status >= 400 {
		// still a successful navigation per spec
		log.Warn().Str("url", url).Int("status", status).Msg("navigation returned an HTTP error status")
	}
	return status, nil
}

// NavigateWithRetry retries a navigation timeout/failure up to twice with
// backoff (spec §7 propagation policy), returning a wrapped error only once
// retries are exhausted.
func NavigateWithRetry(c *Context, url string, timeout time.Duration) (int, error) {
	var lastErr error
	for attempt := 0; attempt <= 2; attempt++ {
		status, err := c.Navigate(url, timeout)
		if err == nil {
			return status, nil
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	return 0, fmt.Errorf("navigation exhausted retries: %w", lastErr)
}

package harness

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
	"unicode/utf8"
)

// maxReasonBody is the number of body bytes quoted in a failure reason.
const maxReasonBody = 512

// classify maps a transport error to an error kind and reason.
func classify(err error, timeout time.Duration) (ErrorKind, string) {
	if isTimeout(err) {
		return KindTimeout, fmt.Sprintf("request timed out after %s: %v", timeout, err)
	}

	if errors.Is(err, context.Canceled) {
		return KindNetwork, fmt.Sprintf("request canceled: %v", err)
	}

	return KindNetwork, fmt.Sprintf("request failed: %v", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusReason describes an unexpected status code.
func statusReason(status, expected int, body []byte) string {
	reason := fmt.Sprintf("unexpected status %d %s (want %d)", status, http.StatusText(status), expected)
	if text := truncate(body, maxReasonBody); text != "" {
		reason += ": " + text
	}
	return reason
}

// truncate returns at most n bytes of body as valid utf-8.
func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}

	cut := body[:n]
	for len(cut) > 0 && !utf8.Valid(cut) {
		cut = cut[:len(cut)-1]
	}
	return string(cut) + "..."
}

// Package guard holds request-level protections: rate limiting on write
// endpoints and idempotency for retried event submissions from flaky
// pitchside connections.
package guard

// Result says whether a request may proceed and, if not, which guard
// stopped it.
type Result struct {
	Allowed bool
	Reason  string
	Guard   string
}

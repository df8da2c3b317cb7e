package backend

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeoutError: no response arrived inside the per-attempt bound.
type TimeoutError struct {
	Host string
	Wait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Host, e.Wait)
}

// HTTPError: the host answered with a non-2xx status. Message carries
// the server-supplied error/message field when one was present.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// NetworkError: transport-level failure (DNS, connection refused, ...).
type NetworkError struct {
	Host string
	Err  error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Host, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// errEmptyResult marks a 2xx response whose body was unusable for the
// operation (empty body, or empty array on listing ops); the sweep
// treats it as a soft failure and moves to the next host.
var errEmptyResult = errors.New("empty result")

// AttemptError records why one host of a sweep was skipped.
type AttemptError struct {
	Host string
	Err  error
}

// SweepError aggregates every host's failure reason once a full sweep
// has been exhausted.
type SweepError struct {
	Op       string
	Attempts []AttemptError
}

func (e *SweepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: all %d hosts failed", e.Op, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Host, a.Err)
	}
	return b.String()
}

// IsTimeout reports whether err (anywhere in its chain) is a per-host
// timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

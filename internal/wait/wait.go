// Package wait implements the Wait Engine (C8): a single bounded-
// polling primitive with a uniform API, used for every predicate the
// spec names (element resolution, window title, tree text, menu
// state, sleep). Grounded on the teacher's internal/tools/wait.go poll
// loop shape, generalized to the five predicate kinds.
package wait

import (
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
)

// Default poll intervals per predicate family, named in C8.
const (
	DefaultInterval     = 100 * time.Millisecond
	TextWaitInterval    = 200 * time.Millisecond
	MenuStateInterval   = 50 * time.Millisecond
)

// Predicate is evaluated once per poll tick. It returns (done, error):
// an error aborts the wait immediately; done=true ends it successfully.
type Predicate func() (bool, error)

// Until polls pred at interval until it returns true, an error, or
// timeout elapses. On timeout it returns a TIMEOUT error naming what.
func Until(pred Predicate, interval, timeout time.Duration, what string) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := pred()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return desktoperr.Newf(desktoperr.Timeout, "timed out waiting for %s", what)
		}
		remaining := time.Until(deadline)
		if remaining < interval {
			if remaining <= 0 {
				return desktoperr.Newf(desktoperr.Timeout, "timed out waiting for %s", what)
			}
			time.Sleep(remaining)
			continue
		}
		time.Sleep(interval)
	}
}

// Sleep is the trivial predicate family: block for exactly ms
// milliseconds and report success.
func Sleep(ms int) error {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

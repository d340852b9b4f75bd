package shell

import "time"

// Clock supplies the current time to the handlers, so that Decide functions stay pure.
type Clock func() time.Time

// SystemClock returns the wall clock time in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock which always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

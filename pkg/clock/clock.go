// Package clock provides the time source injected into services.
package clock

import "time"

// Func returns the current time.
type Func func() time.Time

// System returns the wall clock in UTC.
func System() time.Time {
	return time.Now().UTC()
}

// After returns now, or the instant one nanosecond past prev when now does not
// come strictly after it. Update timestamps therefore always advance.
func After(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}

// Fixed returns a Func that always reports t. Useful in tests.
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}

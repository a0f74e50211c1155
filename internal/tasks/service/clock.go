package service

import "time"

// Clock returns the current time. Stored timestamps have second precision.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC().Truncate(time.Second)
	}
	return c().UTC().Truncate(time.Second)
}

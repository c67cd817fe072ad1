package dbtime

import (
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

var schoolLoc atomic.Pointer[time.Location]

// SetLocation sets the school timezone used for "today" defaults.
// Blank or unknown names fall back to UTC.
func SetLocation(name string) *time.Location {
	loc := time.UTC
	if name = strings.TrimSpace(name); name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}
	schoolLoc.Store(loc)
	return loc
}

func Location() *time.Location {
	if loc := schoolLoc.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// NowInSchool is the current time in the school timezone.
func NowInSchool() time.Time { return time.Now().In(Location()) }

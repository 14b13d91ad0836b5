package arrivals

import (
	"time"
	_ "time/tzdata"
)

// Layouts for rendered times.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04:05"
)

// London is the Europe/London zone. The zone database is compiled into the
// binary, so this never depends on the host's tzdata.
var London = mustLoadLocation("Europe/London")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Stamp formats t as "YYYY-MM-DD HH:MM:SS" in loc.
func Stamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = London
	}
	return t.In(loc).Format(DateFormat + " " + TimeFormat)
}

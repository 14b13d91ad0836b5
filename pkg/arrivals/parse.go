package arrivals

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/busstop/pkg/errors"
	"github.com/matzehuels/busstop/pkg/integrations/tfl"
)

var destinationSuffixes = []string{
	"Underground Station",
	"Rail Station",
	"DLR Station",
	"Bus Station",
	"Tram Stop",
	"Coach Station",
}

// Parse normalizes one prediction into a display row numbered position.
// Times are rendered in loc, or London when loc is nil.
//
// A prediction missing expectedArrival, timeToStation, destinationName or
// lineName, or whose expectedArrival is not a UTC timestamp, yields an
// error with code MALFORMED_RECORD.
func Parse(p tfl.Prediction, position int, loc *time.Location) (Arrival, error) {
	if loc == nil {
		loc = London
	}
	switch {
	case p.ExpectedArrival == nil:
		return Arrival{}, missingField("expectedArrival")
	case p.TimeToStation == nil:
		return Arrival{}, missingField("timeToStation")
	case p.DestinationName == nil:
		return Arrival{}, missingField("destinationName")
	case p.LineName == nil:
		return Arrival{}, missingField("lineName")
	}

	expected, err := time.Parse(time.RFC3339, *p.ExpectedArrival)
	if err != nil {
		return Arrival{}, errors.Wrap(errors.ErrCodeMalformedRecord, err, "expectedArrival %q", *p.ExpectedArrival)
	}

	return Arrival{
		Number:          position,
		LineName:        *p.LineName,
		DestinationName: CleanDestination(*p.DestinationName),
		ArrivalTime:     expected.In(loc).Format(TimeFormat),
		DueIn:           DueIn(*p.TimeToStation),
	}, nil
}

func missingField(name string) error {
	return errors.New(errors.ErrCodeMalformedRecord, "missing field %q", name)
}

// DueIn renders a countdown from seconds to arrival: "due" under a minute,
// otherwise "<N>min" with N = floor(seconds/60).
func DueIn(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	if minutes == 0 {
		return "due"
	}
	return strconv.Itoa(minutes) + "min"
}

// CleanDestination removes station-type suffixes such as
// "Underground Station" and trims the result. It is idempotent.
func CleanDestination(name string) string {
	for {
		cleaned := name
		for _, suffix := range destinationSuffixes {
			cleaned = strings.ReplaceAll(cleaned, suffix, "")
		}
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == name {
			return cleaned
		}
		name = cleaned
	}
}

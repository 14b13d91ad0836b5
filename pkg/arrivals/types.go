package arrivals

import "encoding/json"

const (
	// NoInfoMessage is the text of the sentinel arrival shown when a stop has
	// nothing to display.
	NoInfoMessage = "No information at this time."

	// UnknownStop labels a stop whose name could not be resolved.
	UnknownStop = "Unknown Stop"
)

// Status records why a StopResult looks the way it does. It is not
// serialized: an empty stop and a failed fetch render identically.
type Status string

const (
	StatusOK          Status = "ok"
	StatusEmpty       Status = "empty"
	StatusFetchFailed Status = "fetch_failed"
	StatusConfigError Status = "config_error"
)

// Arrival is one display row for a stop, or the sentinel row when NoInfo is
// set.
type Arrival struct {
	Number          int    `json:"number,string"`
	LineName        string `json:"lineName"`
	DestinationName string `json:"destinationName"`
	ArrivalTime     string `json:"arrivalTime"`
	DueIn           string `json:"dueIn"`

	NoInfo string `json:"-"`
}

// NoInfo returns a sentinel arrival carrying msg.
func NoInfo(msg string) Arrival {
	return Arrival{NoInfo: msg}
}

// IsSentinel reports whether a is a "no information" row.
func (a Arrival) IsSentinel() bool { return a.NoInfo != "" }

// MarshalJSON encodes a sentinel as {"noInfo": "..."} and any other
// arrival with its five display fields.
func (a Arrival) MarshalJSON() ([]byte, error) {
	if a.IsSentinel() {
		return json.Marshal(struct {
			NoInfo string `json:"noInfo"`
		}{a.NoInfo})
	}
	type plain Arrival
	return json.Marshal(plain(a))
}

// StopResult is the board for one stop. Arrivals is never empty.
type StopResult struct {
	StopName    string    `json:"stopName"`
	DateAndTime string    `json:"dateAndTime"`
	Arrivals    []Arrival `json:"arrivals"`

	Status Status `json:"-"`
	Reason string `json:"-"`
}

// Sentinel builds a StopResult holding only a "no information" row.
func Sentinel(stopName, dateAndTime string, status Status, msg, reason string) StopResult {
	return StopResult{
		StopName:    stopName,
		DateAndTime: dateAndTime,
		Arrivals:    []Arrival{NoInfo(msg)},
		Status:      status,
		Reason:      reason,
	}
}

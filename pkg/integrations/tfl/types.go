package tfl

// StopPoint is the subset of a TfL StopPoint resource used to label a stop.
type StopPoint struct {
	NaptanID   string `json:"naptanId,omitempty"`
	CommonName string `json:"commonName"`
}

// Prediction is one raw arrival prediction from the StopPoint Arrivals
// endpoint.
//
// The fields needed to build a display row are pointers so that a missing
// field can be told apart from a zero value. A record that could not be
// decoded at all is returned with every field nil.
type Prediction struct {
	LineName        *string  `json:"lineName"`
	DestinationName *string  `json:"destinationName"`
	ExpectedArrival *string  `json:"expectedArrival"`
	TimeToStation   *float64 `json:"timeToStation"`

	// Informational; decoded but not rendered.
	PlatformName string `json:"platformName,omitempty"`
	Towards      string `json:"towards,omitempty"`
	VehicleID    string `json:"vehicleId,omitempty"`
	ModeName     string `json:"modeName,omitempty"`
	NaptanID     string `json:"naptanId,omitempty"`
}

// ExpectedArrivalKey returns the raw expectedArrival string used for
// ordering, or "" when the field is missing.
func (p Prediction) ExpectedArrivalKey() string {
	if p.ExpectedArrival == nil {
		return ""
	}
	return *p.ExpectedArrival
}

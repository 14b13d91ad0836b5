package arrivals

import (
	"encoding/json"
	"testing"
)

func TestArrivalMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		a    Arrival
		want string
	}{
		{
			name: "row",
			a:    Arrival{Number: 3, LineName: "N29", DestinationName: "Trafalgar Square", ArrivalTime: "01:02:03", DueIn: "7min"},
			want: `{"number":"3","lineName":"N29","destinationName":"Trafalgar Square","arrivalTime":"01:02:03","dueIn":"7min"}`,
		},
		{
			name: "sentinel",
			a:    NoInfo(NoInfoMessage),
			want: `{"noInfo":"No information at this time."}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.a)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json = %s\nwant   %s", data, tt.want)
			}
		})
	}
}

func TestSentinelHidesStatus(t *testing.T) {
	res := Sentinel(UnknownStop, "2025-04-20 21:00:00", StatusFetchFailed, NoInfoMessage, "boom")

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"Status", "status", "Reason", "reason"} {
		if _, ok := m[key]; ok {
			t.Errorf("serialized result exposes %q", key)
		}
	}
	if len(res.Arrivals) != 1 || !res.Arrivals[0].IsSentinel() {
		t.Errorf("Arrivals = %+v", res.Arrivals)
	}
}

package arrivals

import (
	"context"
	"sync"

	"github.com/matzehuels/busstop/pkg/integrations/tfl"
)

type fakeSource struct {
	mu           sync.Mutex
	names        map[string]string
	preds        map[string][]tfl.Prediction
	stopErr      error
	arrivalsErr  error
	stopCalls    map[string]int
	arrivalCalls int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		names:     map[string]string{},
		preds:     map[string][]tfl.Prediction{},
		stopCalls: map[string]int{},
	}
}

func (f *fakeSource) StopPoint(_ context.Context, stopID string) (tfl.StopPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls[stopID]++
	if f.stopErr != nil {
		return tfl.StopPoint{}, f.stopErr
	}
	return tfl.StopPoint{NaptanID: stopID, CommonName: f.names[stopID]}, nil
}

func (f *fakeSource) Arrivals(_ context.Context, stopID string) ([]tfl.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.arrivalCalls++
	if f.arrivalsErr != nil {
		return nil, f.arrivalsErr
	}
	return append([]tfl.Prediction(nil), f.preds[stopID]...), nil
}

func prediction(line, dest, expected string, tts float64) tfl.Prediction {
	return tfl.Prediction{
		LineName:        &line,
		DestinationName: &dest,
		ExpectedArrival: &expected,
		TimeToStation:   &tts,
	}
}

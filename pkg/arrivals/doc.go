// Package arrivals turns raw TfL predictions into stop boards.
//
// [Parse] normalizes a single prediction: the expected arrival is
// converted to Europe/London wall-clock time, the destination loses its
// station-type suffix, and the seconds-to-arrival become a countdown such
// as "due" or "4min".
//
// [Aggregator] builds one [StopResult] per stop. It orders predictions by
// expected arrival, keeps the first requested number that parse, and
// labels the board with the stop's name from [Names]. A board never has an
// empty arrivals list; when nothing can be shown it carries one sentinel
// row that serializes as {"noInfo": "No information at this time."}, and
// the Status field says whether the stop was empty or the fetch failed.
package arrivals

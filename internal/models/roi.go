package models

import "math"

// ComputeROI returns revenue divided by timeTaken, or nil when the metric
// is not computable: a non-finite input, timeTaken <= 0, or a non-finite
// quotient.
func ComputeROI(revenue, timeTaken float64) *float64 {
	if math.IsNaN(revenue) || math.IsInf(revenue, 0) {
		return nil
	}
	if math.IsNaN(timeTaken) || math.IsInf(timeTaken, 0) {
		return nil
	}
	if timeTaken <= 0 {
		return nil
	}
	roi := revenue / timeTaken
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return nil
	}
	return &roi
}

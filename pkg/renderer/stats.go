package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	RowsRendered    int           // Rows completed before return
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples requested per pixel
	RaysTraced      int64         // Ray segments traced, including bounces
	Workers         int           // Size of the worker pool
	Duration        time.Duration // Wall time of the render
}

// add folds the counts of a finished row into the totals
func (s *RenderStats) add(row RenderStats) {
	s.RowsRendered += row.RowsRendered
	s.TotalPixels += row.TotalPixels
	s.TotalSamples += row.TotalSamples
	s.RaysTraced += row.RaysTraced
}

// RaysPerSecond returns traced ray segments per second of wall time
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.RaysTraced) / s.Duration.Seconds()
}

// AverageBounces returns the mean number of segments per camera sample
func (s RenderStats) AverageBounces() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.RaysTraced) / float64(s.TotalSamples)
}

// Complete reports whether every row was rendered
func (s RenderStats) Complete() bool {
	return s.RowsRendered == s.Height
}

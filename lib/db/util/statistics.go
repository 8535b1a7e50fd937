package util

import (
	"math"
	"sync"
)

// ----------------------------------------------------------------------------
// Basic statistics
// ----------------------------------------------------------------------------

type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
}

// NewStats computes standard deviation, minimum, maximum and mean of values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	min := values[0]
	max := values[0]

	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	return Stats{
		StdDeviation: math.Sqrt(sumSquaredDiffs / float64(len(values))),
		Min:          min,
		Max:          max,
		Mean:         mean,
	}
}

// ----------------------------------------------------------------------------
// SizeHistogram
// ----------------------------------------------------------------------------

// SizeHistogram tracks the distribution of value sizes in exponential
// buckets, covering single bytes up to the 512 MiB value size limit. It
// lets Info() report size estimates without retaining every sample.
type SizeHistogram struct {
	mutex      sync.RWMutex
	boundaries []int
	buckets    []int64
	count      int64
	sum        int64
}

// NewSizeHistogram creates a size histogram with default bucket boundaries.
func NewSizeHistogram() *SizeHistogram {
	boundaries := []int{
		16, 64, 256, 1024, 4096, // bytes to 4KB
		16384, 65536, 262144, 1048576, // to 1MB
		4194304, 16777216, 67108864, // to 64MB
		268435456, 536870912, // to the 512MiB value limit
	}
	return &SizeHistogram{
		boundaries: boundaries,
		buckets:    make([]int64, len(boundaries)+1),
	}
}

// AddSample records one value size.
//
// Thread-safety: This method is safe for concurrent use.
func (h *SizeHistogram) AddSample(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	bucketIndex := len(h.boundaries)
	for i, boundary := range h.boundaries {
		if size <= boundary {
			bucketIndex = i
			break
		}
	}

	h.buckets[bucketIndex]++
	h.count++
	h.sum += int64(size)
}

// Count returns the total number of samples.
func (h *SizeHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// AverageSize returns the mean sample size.
func (h *SizeHistogram) AverageSize() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// MedianEstimate estimates the median sample size from the buckets.
func (h *SizeHistogram) MedianEstimate() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}

	medianCount := h.count / 2
	cumulative := int64(0)

	for i, count := range h.buckets {
		cumulative += count
		if cumulative >= medianCount {
			switch {
			case i == 0:
				return h.boundaries[0] / 2
			case i < len(h.boundaries):
				return (h.boundaries[i-1] + h.boundaries[i]) / 2
			default:
				return h.boundaries[len(h.boundaries)-1]
			}
		}
	}

	return int(h.sum / h.count)
}

package db

import (
	"github.com/groupkv/gkv/lib/db/util"
)

// maximum number of entries sampled for one Info call
const infoSampleLimit = 10000

// Info describes the current state of a database instance. All sizes are
// estimates derived from a bounded sample of the keyspace.
type Info struct {
	Keys              int    `json:"keys"`
	Dirty             uint64 `json:"dirty"`
	SizeBytesEstimate int    `json:"size_bytes_estimate"`
	AvgValueSize      int    `json:"avg_value_size"`
	MedianValueSize   int    `json:"median_value_size"`
	ExpiringSampled   int    `json:"expiring_sampled"`
}

// Info returns statistics about the database. The value sizes are sampled
// into a histogram instead of scanning the full keyspace.
func (d *DB) Info() Info {
	histogram := util.NewSizeHistogram()

	sampled := 0
	expiring := 0
	d.data.Range(func(_ string, e entry) bool {
		histogram.AddSample(int(e.val.Len()))
		if e.expireAt != 0 {
			expiring++
		}
		sampled++
		return sampled < infoSampleLimit
	})

	// weighted estimate, median-leaning like the underlying histogram is
	median := histogram.MedianEstimate()
	avg := histogram.AverageSize()
	perValue := (median*60 + avg*40) / 100

	return Info{
		Keys:              d.Len(),
		Dirty:             d.Dirty(),
		SizeBytesEstimate: perValue * d.Len(),
		AvgValueSize:      avg,
		MedianValueSize:   median,
		ExpiringSampled:   expiring,
	}
}

package model

// Sample is a single (volume, response) measurement: the administered IV
// volume in mL and the measured change in velocity time integral in cm.
// Response entries may be missing while the clinician is still filling in
// the data table; HasResponse distinguishes "not yet measured" from a
// measured value of zero.
type Sample struct {
	// Volume is the administered IV volume in mL. Volumes are non-negative.
	Volume float64 `json:"volume"`

	// Response is the measured ΔVTI in cm. Only meaningful when
	// HasResponse is true.
	Response float64 `json:"response"`

	// HasResponse reports whether Response holds a measured value.
	HasResponse bool `json:"hasResponse"`
}

// Dataset is an ordered sequence of samples. Order is irrelevant to curve
// fitting but is preserved for display and export, matching the order the
// data was entered or imported.
type Dataset []Sample

// Clean returns the volumes and responses of all samples that have a
// measured response, as two fresh equal-length slices.
//
// Design decision: the clean subset is derived on every call rather than
// cached because the dataset is edited between analysis passes. Caching
// would risk fitting against stale data.
func (d Dataset) Clean() (x, y []float64) {
	x = make([]float64, 0, len(d))
	y = make([]float64, 0, len(d))
	for _, s := range d {
		if !s.HasResponse {
			continue
		}
		x = append(x, s.Volume)
		y = append(y, s.Response)
	}
	return x, y
}

// CleanCount returns the number of samples with a measured response.
func (d Dataset) CleanCount() int {
	n := 0
	for _, s := range d {
		if s.HasResponse {
			n++
		}
	}
	return n
}

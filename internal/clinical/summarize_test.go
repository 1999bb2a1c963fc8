package clinical

import (
	"testing"

	"github.com/hemodyn/starling/internal/model"
)

func TestClassifySensitivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		steepness float64
		want      model.Sensitivity
	}{
		{name: "well below moderate threshold", steepness: 0.3, want: model.SensitivityLow},
		{name: "exactly the moderate threshold stays low", steepness: 0.8, want: model.SensitivityLow},
		{name: "just above the moderate threshold", steepness: 0.81, want: model.SensitivityModerate},
		{name: "mid moderate band", steepness: 1.2, want: model.SensitivityModerate},
		{name: "exactly the high threshold stays moderate", steepness: 1.5, want: model.SensitivityModerate},
		{name: "just above the high threshold", steepness: 1.51, want: model.SensitivityHigh},
		{name: "steep curve", steepness: 4.0, want: model.SensitivityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifySensitivity(tt.steepness); got != tt.want {
				t.Errorf("ClassifySensitivity(%g) = %v, want %v", tt.steepness, got, tt.want)
			}
		})
	}
}

func TestMoreDataRecommended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want bool
	}{
		{n: 5, want: true},
		{n: 7, want: true},
		{n: 8, want: false},
		{n: 20, want: false},
	}

	for _, tt := range tests {
		if got := MoreDataRecommended(tt.n); got != tt.want {
			t.Errorf("MoreDataRecommended(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		params      model.FittedParameters
		sampleCount int
		want        model.ClinicalSummary
	}{
		{
			name: "moderate sensitivity with low-sensitivity note",
			// A steepness of 0.9 is Moderate by category yet still earns the
			// low-sensitivity note; the two signals use different thresholds.
			params:      model.FittedParameters{Baseline: 2, Plateau: 9, OptimalPreload: 180, Steepness: 0.9},
			sampleCount: 5,
			want: model.ClinicalSummary{
				CardiacReserve:      7,
				Sensitivity:         model.SensitivityModerate,
				LowSensitivityNote:  true,
				MoreDataRecommended: true,
				SampleCount:         5,
			},
		},
		{
			name:        "high sensitivity without high note",
			params:      model.FittedParameters{Baseline: 1, Plateau: 8, OptimalPreload: 150, Steepness: 1.8},
			sampleCount: 9,
			want: model.ClinicalSummary{
				CardiacReserve: 7,
				Sensitivity:    model.SensitivityHigh,
				SampleCount:    9,
			},
		},
		{
			name:        "very steep curve earns the high note",
			params:      model.FittedParameters{Baseline: 3, Plateau: 11.5, OptimalPreload: 140, Steepness: 2.4},
			sampleCount: 8,
			want: model.ClinicalSummary{
				CardiacReserve:      8.5,
				Sensitivity:         model.SensitivityHigh,
				HighSensitivityNote: true,
				SampleCount:         8,
			},
		},
		{
			name:        "low sensitivity",
			params:      model.FittedParameters{Baseline: 4, Plateau: 6, OptimalPreload: 220, Steepness: 0.5},
			sampleCount: 10,
			want: model.ClinicalSummary{
				CardiacReserve:     2,
				Sensitivity:        model.SensitivityLow,
				LowSensitivityNote: true,
				SampleCount:        10,
			},
		},
		{
			name: "negative reserve is reported unclamped",
			// A fit can legitimately land with the plateau below the
			// baseline; the reserve stays negative rather than zero.
			params:      model.FittedParameters{Baseline: 6, Plateau: 2, OptimalPreload: 200, Steepness: 1.2},
			sampleCount: 6,
			want: model.ClinicalSummary{
				CardiacReserve:      -4,
				Sensitivity:         model.SensitivityModerate,
				MoreDataRecommended: true,
				SampleCount:         6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Summarize(tt.params, tt.sampleCount)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarize_isDeterministic(t *testing.T) {
	t.Parallel()

	params := model.FittedParameters{Baseline: 2, Plateau: 9.1, OptimalPreload: 171.3, Steepness: 1.43}
	first := Summarize(params, 5)
	second := Summarize(params, 5)
	if first != second {
		t.Errorf("repeated summaries differ: %+v vs %+v", first, second)
	}
}

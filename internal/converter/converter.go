package converter

import (
	"github.com/RMahshie/crossr1/pkg/models"
)

// R1 parameter limits
const (
	MinGainDB = -18.0
	MaxGainDB = 12.0
	MinQ      = 0.1
	MaxQ      = 25.0
)

// Convert maps CrossLite bands onto the 16 R1 filter slots. Bands past the
// 16th are dropped; unused slots get the disabled factory default.
func Convert(bands []models.EqBand) models.R1Preset {
	var preset models.R1Preset
	for i := range preset.Filters {
		if i >= len(bands) {
			preset.Filters[i] = models.DisabledFilter()
			continue
		}
		band := bands[i]
		preset.Filters[i] = models.EnabledFilter(band.FrequencyHz, ClampQ(band.Q), ClampGain(band.GainDB))
	}
	return preset
}

// ClampGain saturates gain to the R1 range
func ClampGain(gain float64) float64 {
	return clamp(gain, MinGainDB, MaxGainDB)
}

// ClampQ saturates Q to the R1 range
func ClampQ(q float64) float64 {
	return clamp(q, MinQ, MaxQ)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

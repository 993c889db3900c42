package models

import (
	"errors"
	"fmt"
)

// MaxFilters is the number of filter slots in an R1 EQ preset
const MaxFilters = 16

// ErrPresetLength is returned when a preset is built from the wrong number of filters
var ErrPresetLength = errors.New("r1 preset must have exactly 16 filters")

// R1Filter represents one filter slot of an R1 preset
type R1Filter struct {
	FrequencyHz float64 `json:"frequency_hz"`
	Q           float64 `json:"q"`
	GainDB      float64 `json:"gain_db"`
	Enabled     bool    `json:"enabled"`
}

// DisabledFilter returns the R1 factory default state of an unused slot
func DisabledFilter() R1Filter {
	return R1Filter{FrequencyHz: 1000.0, Q: 0.7, GainDB: 0.0, Enabled: false}
}

// EnabledFilter returns an active slot
func EnabledFilter(frequencyHz, q, gainDB float64) R1Filter {
	return R1Filter{FrequencyHz: frequencyHz, Q: q, GainDB: gainDB, Enabled: true}
}

// R1Preset is the complete set of 16 R1 filter slots, ordered 1..16
type R1Preset struct {
	Filters [MaxFilters]R1Filter `json:"filters"`
}

// NewR1Preset builds a preset from exactly MaxFilters filters
func NewR1Preset(filters []R1Filter) (R1Preset, error) {
	if len(filters) != MaxFilters {
		return R1Preset{}, fmt.Errorf("%w: got %d", ErrPresetLength, len(filters))
	}
	var p R1Preset
	copy(p.Filters[:], filters)
	return p, nil
}

// EnabledCount returns the number of active slots
func (p R1Preset) EnabledCount() int {
	n := 0
	for _, f := range p.Filters {
		if f.Enabled {
			n++
		}
	}
	return n
}

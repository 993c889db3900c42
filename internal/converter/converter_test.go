package converter

import (
	"testing"

	"github.com/RMahshie/crossr1/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestConvert_SingleBand(t *testing.T) {
	result := Convert([]models.EqBand{{FrequencyHz: 1001.0, GainDB: -6.0, Q: 0.750}})

	assert.Len(t, result.Filters, models.MaxFilters)
	assert.Equal(t, models.EnabledFilter(1001.0, 0.750, -6.0), result.Filters[0])
	for i := 1; i < models.MaxFilters; i++ {
		assert.Equal(t, models.DisabledFilter(), result.Filters[i], "slot %d", i+1)
	}
}

func TestConvert_MultipleBands(t *testing.T) {
	result := Convert([]models.EqBand{
		{FrequencyHz: 1001.0, GainDB: -6.0, Q: 0.750},
		{FrequencyHz: 102.0, GainDB: 4.3, Q: 1.200},
	})

	assert.Equal(t, models.EnabledFilter(1001.0, 0.75, -6.0), result.Filters[0])
	assert.Equal(t, models.EnabledFilter(102.0, 1.2, 4.3), result.Filters[1])
	assert.Equal(t, 2, result.EnabledCount())
	assert.False(t, result.Filters[2].Enabled)
}

func TestConvert_ClampsExtremeValues(t *testing.T) {
	tests := []struct {
		name     string
		band     models.EqBand
		wantGain float64
		wantQ    float64
	}{
		{"gain too low", models.EqBand{FrequencyHz: 1001, GainDB: -40.0, Q: 0.1}, -18.0, 0.1},
		{"gain too high", models.EqBand{FrequencyHz: 102, GainDB: 40.0, Q: 128.0}, 12.0, 25.0},
		{"q too low", models.EqBand{FrequencyHz: 1001, GainDB: -6.0, Q: 0.05}, -6.0, 0.1},
		{"q too high", models.EqBand{FrequencyHz: 102, GainDB: 4.0, Q: 200.0}, 4.0, 25.0},
		{"boundaries pass through", models.EqBand{FrequencyHz: 50, GainDB: 12.0, Q: 25.0}, 12.0, 25.0},
		{"lower boundaries pass through", models.EqBand{FrequencyHz: 50, GainDB: -18.0, Q: 0.1}, -18.0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Convert([]models.EqBand{tt.band}).Filters[0]
			assert.Equal(t, tt.wantGain, f.GainDB)
			assert.Equal(t, tt.wantQ, f.Q)
			assert.Equal(t, tt.band.FrequencyHz, f.FrequencyHz)
			assert.True(t, f.Enabled)
		})
	}
}

func TestClampIsIdempotent(t *testing.T) {
	for _, v := range []float64{-100, -18, -17.999, 0, 0.05, 0.1, 11.5, 12, 25, 26, 1000} {
		assert.Equal(t, ClampGain(v), ClampGain(ClampGain(v)))
		assert.Equal(t, ClampQ(v), ClampQ(ClampQ(v)))
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	result := Convert(nil)

	assert.Equal(t, 0, result.EnabledCount())
	for _, f := range result.Filters {
		assert.Equal(t, models.DisabledFilter(), f)
	}
}

func TestConvert_LimitsToMaxFilters(t *testing.T) {
	var bands []models.EqBand
	for i := 1; i <= 20; i++ {
		bands = append(bands, models.EqBand{FrequencyHz: float64(i * 100), GainDB: 1, Q: 1})
	}

	result := Convert(bands)

	assert.Equal(t, models.MaxFilters, result.EnabledCount())
	assert.Equal(t, 100.0, result.Filters[0].FrequencyHz)
	assert.Equal(t, 1600.0, result.Filters[15].FrequencyHz)
}

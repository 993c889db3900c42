package writer

import (
	"strconv"
	"strings"

	"github.com/RMahshie/crossr1/pkg/models"
)

const (
	header = "<R1EQSETTINGS_20><EQ><REMARKS></REMARKS><EQx_ON>1.0</EQx_ON>"
	footer = "</EQ></R1EQSETTINGS_20>"
)

// Serialize renders a preset as R1 XML. The R1 preset loader compares element
// text literally, so layout and number formatting must not change.
func Serialize(preset models.R1Preset) string {
	var b strings.Builder
	b.Grow(len(header) + len(footer) + models.MaxFilters*160)
	b.WriteString(header)

	for i, f := range preset.Filters {
		n := strconv.Itoa(i + 1)
		enabled := "0.000000"
		if f.Enabled {
			enabled = "1.000000"
		}
		element(&b, "FILTER_", n, "1.000000")
		element(&b, "F_", n, fixed6(f.FrequencyHz))
		element(&b, "Q_", n, fixed6(f.Q))
		element(&b, "G_", n, fixed6(f.GainDB))
		element(&b, "E_", n, enabled)
	}

	b.WriteString(footer)
	return b.String()
}

func element(b *strings.Builder, name, n, text string) {
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteString(n)
	b.WriteByte('>')
	b.WriteString(text)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(n)
	b.WriteByte('>')
}

func fixed6(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

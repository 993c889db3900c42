// Package parser reads CrossLite text exports into per-channel EQ band lists.
//
// A CrossLite export has no explicit channel delimiter. Parsing is done in two
// passes over the same line sequence: detection decides from the whole document
// whether it holds more than one channel, and only then segmentation splits it
// into channel sections. Single-channel documents collect every band under
// models.DefaultChannel and ignore boundary evidence entirely.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/RMahshie/crossr1/pkg/models"
)

// ErrMalformedNumber is returned when a band line matches but one of its numbers does not parse
var ErrMalformedNumber = errors.New("malformed number")

var (
	bandPattern         = regexp.MustCompile(`Frequency=\s*([\d.]+)Hz\s+Gain=\s*([\d.-]+)dB\s+Qbp=\s*([\d.]+)`)
	firstChannelPattern = regexp.MustCompile(`^IIR Bypassed\.(.+)$`)
	enumeratorPattern   = regexp.MustCompile(`^\d+\)`)

	// Layer/channel index annotations that legacy single-channel exports put
	// after "IIR Bypassed.". Heuristic only: the vendor format does not document
	// them, so unseen exports may produce false positives or negatives.
	metadataPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bL\s*\d+\s*Ch\s*\d+`),
		regexp.MustCompile(`Layer\s*\d+`),
		regexp.MustCompile(`Channel\s*\d+`),
	}
)

const crossoverPrefix = "IIR Crossover"

// ParseChannels parses a whole export into a document keyed by channel name.
// Unrecognized lines are ignored; channels without bands are left out.
func ParseChannels(text string) (*models.ParsedDocument, error) {
	lines := splitLines(text)
	doc := models.NewParsedDocument()

	if len(detectChannels(lines)) <= 1 {
		var bandLines []int
		for ev := range scanEvents(lines) {
			if ev.kind == eventBand {
				bandLines = append(bandLines, ev.line)
			}
		}
		bands, err := extractBands(lines, bandLines)
		if err != nil {
			return nil, err
		}
		if len(bands) > 0 {
			doc.Put(models.ChannelBands{Name: models.DefaultChannel, Bands: bands})
		}
		return doc, nil
	}

	for _, s := range foldSections(scanEvents(lines), len(lines)) {
		bands, err := extractBands(lines, s.bandLines)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", s.name, err)
		}
		if len(bands) == 0 {
			continue
		}
		doc.Put(models.ChannelBands{Name: s.name, Bands: bands})
	}
	return doc, nil
}

// Parse returns the first channel of the export. It keeps the single-channel
// contract of older callers: with no channels it returns an empty default channel.
func Parse(text string) (models.ChannelBands, error) {
	doc, err := ParseChannels(text)
	if err != nil {
		return models.ChannelBands{}, err
	}
	if doc.Len() == 0 {
		return models.ChannelBands{Name: models.DefaultChannel, Bands: []models.EqBand{}}, nil
	}
	return doc.Channels()[0], nil
}

// detectChannels collects the distinct channel names implied by the document,
// in first-seen order. The document is multi-channel when more than one is found.
//
// A non-metadata "IIR Bypassed.<name>" marker contributes its name and arms the
// second signal: a bare header line whose next non-empty line is IIR/EQ related.
func detectChannels(lines []string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	armed := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if name, ok := firstChannelName(line); ok && !looksLikeMetadata(name) {
			add(name)
			armed = true
		}

		if !armed || !isHeaderCandidate(line) {
			continue
		}
		next := nextNonEmpty(lines, i)
		if strings.HasPrefix(next, "IIR") ||
			strings.Contains(next, "Parametric EQ") ||
			strings.Contains(next, "Frequency=") {
			add(line)
		}
	}
	return names
}

// extractBands parses the given band lines in order
func extractBands(lines []string, bandLines []int) ([]models.EqBand, error) {
	bands := make([]models.EqBand, 0, len(bandLines))
	for _, i := range bandLines {
		band, err := parseBand(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		bands = append(bands, band)
	}
	return bands, nil
}

func parseBand(line string) (models.EqBand, error) {
	m := bandPattern.FindStringSubmatch(line)
	if m == nil {
		return models.EqBand{}, fmt.Errorf("no band in %q", line)
	}

	var values [3]float64
	for i, field := range [3]string{"frequency", "gain", "qbp"} {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return models.EqBand{}, fmt.Errorf("%s %q: %w", field, m[i+1], ErrMalformedNumber)
		}
		values[i] = v
	}
	return models.NewEqBand(values[0], values[1], values[2])
}

func firstChannelName(trimmed string) (string, bool) {
	m := firstChannelPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func looksLikeMetadata(name string) bool {
	for _, p := range metadataPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// isHeaderCandidate reports whether a trimmed line could be a bare channel name
func isHeaderCandidate(line string) bool {
	return line != "" &&
		!strings.HasPrefix(line, "IIR") &&
		!strings.HasPrefix(line, "Layer") &&
		!strings.Contains(line, "Parametric EQ") &&
		!strings.Contains(line, "Magnitude Mode") &&
		!strings.Contains(line, "biquad") &&
		!strings.Contains(line, "=") &&
		!enumeratorPattern.MatchString(line)
}

func nextNonEmpty(lines []string, i int) string {
	for _, l := range lines[i+1:] {
		if t := strings.TrimSpace(l); t != "" {
			return t
		}
	}
	return ""
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

package models

import (
	"errors"
	"fmt"
	"math"
)

// DefaultChannel is the channel name used when a document is not multi-channel
const DefaultChannel = "default"

// ErrInvalidBand is returned when a band has a non-positive frequency or Q
var ErrInvalidBand = errors.New("invalid eq band")

// EqBand represents a single parametric EQ band parsed from a CrossLite export
type EqBand struct {
	FrequencyHz float64 `json:"frequency_hz" doc:"Center frequency in Hz"`
	GainDB      float64 `json:"gain_db" doc:"Gain in dB"`
	Q           float64 `json:"q" doc:"Q factor"`
}

// NewEqBand creates a band, rejecting non-positive frequency or Q
func NewEqBand(frequencyHz, gainDB, q float64) (EqBand, error) {
	if !(frequencyHz > 0) || math.IsInf(frequencyHz, 0) {
		return EqBand{}, fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidBand, frequencyHz)
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return EqBand{}, fmt.Errorf("%w: q factor must be positive, got %v", ErrInvalidBand, q)
	}
	return EqBand{FrequencyHz: frequencyHz, GainDB: gainDB, Q: q}, nil
}

// ChannelBands is the ordered band list of one channel
type ChannelBands struct {
	Name  string   `json:"name"`
	Bands []EqBand `json:"bands"`
}

// ParsedDocument maps channel names to their bands, preserving insertion order
type ParsedDocument struct {
	names    []string
	channels map[string]ChannelBands
}

// NewParsedDocument creates an empty document
func NewParsedDocument() *ParsedDocument {
	return &ParsedDocument{channels: make(map[string]ChannelBands)}
}

// Put adds a channel. A name seen before keeps its position and gets the new bands.
func (d *ParsedDocument) Put(ch ChannelBands) {
	if _, ok := d.channels[ch.Name]; !ok {
		d.names = append(d.names, ch.Name)
	}
	d.channels[ch.Name] = ch
}

// Get returns the channel with the given name
func (d *ParsedDocument) Get(name string) (ChannelBands, bool) {
	ch, ok := d.channels[name]
	return ch, ok
}

// Names returns channel names in insertion order
func (d *ParsedDocument) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Channels returns all channels in insertion order
func (d *ParsedDocument) Channels() []ChannelBands {
	out := make([]ChannelBands, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, d.channels[name])
	}
	return out
}

// Len returns the number of channels
func (d *ParsedDocument) Len() int {
	return len(d.names)
}

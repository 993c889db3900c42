package processing

import (
	"regexp"

	"github.com/RMahshie/crossr1/internal/converter"
	"github.com/RMahshie/crossr1/internal/parser"
	"github.com/RMahshie/crossr1/internal/writer"
	"github.com/RMahshie/crossr1/pkg/models"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Output is one serialized R1 preset
type Output struct {
	Name      string
	Channel   string
	BandCount int
	XML       string
}

// Document is the result of converting one CrossLite export
type Document struct {
	MultiChannel bool
	Outputs      []Output
}

// Map returns output name to XML
func (d *Document) Map() map[string]string {
	m := make(map[string]string, len(d.Outputs))
	for _, o := range d.Outputs {
		m[o.Name] = o.XML
	}
	return m
}

// Names returns output names in channel order
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Outputs))
	for _, o := range d.Outputs {
		names = append(names, o.Name)
	}
	return names
}

// ConvertDocument runs parser, converter and writer over one export.
// A single default channel produces one output named baseName; anything
// else produces one output per channel, named after the sanitized channel name.
func ConvertDocument(text, baseName string) (*Document, error) {
	doc, err := parser.ParseChannels(text)
	if err != nil {
		return nil, err
	}

	result := &Document{MultiChannel: doc.Len() > 0 && !isSingleChannel(doc)}
	index := make(map[string]int)

	for _, ch := range doc.Channels() {
		if len(ch.Bands) == 0 {
			continue
		}
		name := baseName
		if result.MultiChannel {
			name = SanitizeFilename(ch.Name)
		}
		out := Output{
			Name:      name,
			Channel:   ch.Name,
			BandCount: len(ch.Bands),
			XML:       writer.Serialize(converter.Convert(ch.Bands)),
		}
		// sanitized names can collide; the later channel wins
		if i, ok := index[name]; ok {
			result.Outputs[i] = out
			continue
		}
		index[name] = len(result.Outputs)
		result.Outputs = append(result.Outputs, out)
	}

	return result, nil
}

// SanitizeFilename replaces characters that are illegal in file names with underscores
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

func isSingleChannel(doc *models.ParsedDocument) bool {
	if doc.Len() != 1 {
		return false
	}
	return doc.Names()[0] == models.DefaultChannel
}

package processing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrInputDirectory is returned when a directory conversion has no input directory to walk
var ErrInputDirectory = errors.New("input directory does not exist")

const (
	// PresetExt is the extension of written R1 presets
	PresetExt = ".rcp"
	sourceExt = ".txt"
)

// ConversionService converts CrossLite exports to R1 presets
type ConversionService interface {
	ConvertDocument(text, baseName string) (*Document, error)
	ConvertFile(ctx context.Context, inputPath, outputPath string) (*FileResult, error)
	ConvertDirectory(ctx context.Context, inputDir, outputDir string) (*DirectoryResult, error)
}

// Options configures the conversion service
type Options struct {
	// Workers bounds concurrent file conversions in ConvertDirectory. Zero means one per CPU.
	Workers int
}

// FileResult describes the conversion of one input file
type FileResult struct {
	InputPath    string
	MultiChannel bool
	Written      []string
	Err          error
}

// DirectoryResult collects the per-file results of a directory conversion, sorted by input path
type DirectoryResult struct {
	Files []FileResult
}

// Converted returns the number of files that converted without error
func (r *DirectoryResult) Converted() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the files that could not be converted
func (r *DirectoryResult) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

type conversionService struct {
	workers int
}

// NewConversionService creates a conversion service
func NewConversionService(opts Options) ConversionService {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &conversionService{workers: workers}
}

func (s *conversionService) ConvertDocument(text, baseName string) (*Document, error) {
	return ConvertDocument(text, baseName)
}

// ConvertFile converts one export. A single-channel export is written to
// outputPath. A multi-channel export is written as one preset per channel into
// outputPath, or into its parent directory when outputPath names an .rcp file.
func (s *conversionService) ConvertFile(ctx context.Context, inputPath, outputPath string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	doc, err := s.readDocument(inputPath, base)
	if err != nil {
		return nil, err
	}

	result := &FileResult{InputPath: inputPath, MultiChannel: doc.MultiChannel}
	switch {
	case len(doc.Outputs) == 0:
		log.Warn().Str("input", inputPath).Msg("No EQ bands found in file")
	case !doc.MultiChannel:
		if err := writePreset(outputPath, doc.Outputs[0].XML); err != nil {
			return nil, err
		}
		result.Written = []string{outputPath}
		log.Info().Str("input", inputPath).Str("output", outputPath).Msg("Converted single channel")
	default:
		dir := outputPath
		if strings.HasSuffix(strings.ToLower(outputPath), PresetExt) {
			dir = filepath.Dir(outputPath)
			log.Info().Str("dir", dir).Msg("Multiple channels detected, using parent directory")
		}
		written, err := writeChannels(dir, doc)
		if err != nil {
			return nil, err
		}
		result.Written = written
		log.Info().Str("input", inputPath).Str("dir", dir).Int("channels", len(written)).Msg("Converted channels")
	}

	return result, nil
}

// ConvertDirectory converts every .txt file below inputDir. Single-channel
// files become <outputDir>/<relative name>.rcp, multi-channel files become a
// directory <outputDir>/<relative name>/ holding one preset per channel.
// A file that fails does not stop the others; the returned error joins all failures.
func (s *conversionService) ConvertDirectory(ctx context.Context, inputDir, outputDir string) (*DirectoryResult, error) {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputDirectory, inputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	sources, err := findSources(inputDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("input", inputDir).Int("files", len(sources)).Int("workers", s.workers).Msg("Converting directory")

	results := make([]FileResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range sources {
		g.Go(func() error {
			results[i] = s.convertTreeFile(gctx, inputDir, outputDir, path)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("input", r.InputPath).Msg("Conversion failed")
			errs = append(errs, r.Err)
		}
	}

	dr := &DirectoryResult{Files: results}
	log.Info().Int("converted", dr.Converted()).Int("failed", len(errs)).Str("output", outputDir).Msg("Directory conversion finished")
	return dr, errors.Join(errs...)
}

func (s *conversionService) convertTreeFile(ctx context.Context, inputDir, outputDir, path string) FileResult {
	result := FileResult{InputPath: path}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		result.Err = err
		return result
	}
	rel = rel[:len(rel)-len(sourceExt)]

	doc, err := s.readDocument(path, filepath.Base(rel))
	if err != nil {
		result.Err = err
		return result
	}
	result.MultiChannel = doc.MultiChannel

	switch {
	case len(doc.Outputs) == 0:
		log.Warn().Str("input", path).Msg("No EQ bands found in file")
	case !doc.MultiChannel:
		out := filepath.Join(outputDir, rel+PresetExt)
		if err := writePreset(out, doc.Outputs[0].XML); err != nil {
			result.Err = err
			return result
		}
		result.Written = []string{out}
		log.Debug().Str("input", path).Str("output", out).Msg("Converted single channel")
	default:
		written, err := writeChannels(filepath.Join(outputDir, rel), doc)
		if err != nil {
			result.Err = err
			return result
		}
		result.Written = written
		log.Debug().Str("input", path).Int("channels", len(written)).Msg("Converted channels")
	}
	return result
}

func (s *conversionService) readDocument(path, baseName string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ConvertDocument(string(content), baseName)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return doc, nil
}

// DefaultOutputPath derives the preset path for an input file
func DefaultOutputPath(inputPath string) string {
	if strings.EqualFold(filepath.Ext(inputPath), sourceExt) {
		return inputPath[:len(inputPath)-len(sourceExt)] + PresetExt
	}
	return inputPath + PresetExt
}

func findSources(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), sourceExt) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return sources, nil
}

func writeChannels(dir string, doc *Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	written := make([]string, 0, len(doc.Outputs))
	for _, o := range doc.Outputs {
		path := filepath.Join(dir, o.Name+PresetExt)
		if err := os.WriteFile(path, []byte(o.XML), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug().Str("channel", o.Channel).Str("output", path).Msg("Wrote channel preset")
		written = append(written, path)
	}
	return written, nil
}

func writePreset(path, xml string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(xml), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

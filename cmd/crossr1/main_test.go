package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `Layer 1
IIR Bypassed.L 1 Ch 1
1) 1Parametric EQ
Frequency= 1001.0Hz Gain= -6.0dB Qbp= 0.750
`

const multiExport = `Layer 1
IIR Bypassed.ml
1) 1Parametric EQ
Frequency= 126.0Hz Gain= -2.0dB Qbp= 6.463

mr
IIR Crossover HPF: Bypassed.
1) 1Parametric EQ
Frequency= 638.0Hz Gain= 0.8dB Qbp= 3.595
`

// run executes the root command with args and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertFileCmd_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "example1.txt")
	require.NoError(t, os.WriteFile(input, []byte(export), 0644))

	out, err := run(t, "convert-file", "-i", input)
	require.NoError(t, err)

	want := filepath.Join(dir, "example1.rcp")
	assert.Contains(t, out, "Successfully converted")
	assert.Contains(t, out, want)
	assert.FileExists(t, want)
}

func TestConvertFileCmd_MultiChannel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "venue.txt")
	require.NoError(t, os.WriteFile(input, []byte(multiExport), 0644))
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "convert-file", "-i", input, "-o", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "2 channel presets")
	assert.FileExists(t, filepath.Join(outDir, "ml.rcp"))
	assert.FileExists(t, filepath.Join(outDir, "mr.rcp"))
}

func TestConvertFileCmd_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := run(t, "convert-file", "-i", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file does not exist: "+missing)
}

func TestConvertFileCmd_RequiresInput(t *testing.T) {
	_, err := run(t, "convert-file")
	assert.Error(t, err)
}

func TestConvertDirectoryCmd(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "r1")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.txt"), []byte(export), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.txt"), []byte(multiExport), 0644))

	stdout, err := run(t, "convert-directory", "-i", in, "-o", out, "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Converted 2 of 2 files")
	assert.FileExists(t, filepath.Join(out, "a.rcp"))
	assert.FileExists(t, filepath.Join(out, "b", "ml.rcp"))
	assert.FileExists(t, filepath.Join(out, "b", "mr.rcp"))
}

func TestConvertDirectoryCmd_ReportsFailures(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "good.txt"), []byte(export), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.txt"), []byte("Frequency= 1.2.3Hz Gain= 0dB Qbp= 1"), 0644))

	stdout, err := run(t, "convert-directory", "-i", in)
	require.Error(t, err)

	assert.Contains(t, stdout, "Converted 1 of 2 files")
	assert.Contains(t, stdout, "failed: "+filepath.Join(in, "bad.txt"))
	assert.FileExists(t, filepath.Join(in, "good.rcp"))
}

func TestConvertDirectoryCmd_MissingInput(t *testing.T) {
	_, err := run(t, "convert-directory", "-i", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestHelpConversionCmd(t *testing.T) {
	out, err := run(t, "help-conversion")
	require.NoError(t, err)

	assert.Contains(t, out, "-18dB to +12dB")
	assert.Contains(t, out, "0.1 to 25.0")
	assert.Contains(t, out, "up to 16 EQ bands")
}

// Command crossr1 converts CrossLite EQ exports into R1 presets.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RMahshie/crossr1/internal/converter"
	"github.com/RMahshie/crossr1/internal/pathutil"
	"github.com/RMahshie/crossr1/internal/processing"
	"github.com/RMahshie/crossr1/pkg/models"
)

const windowsHint = `
Windows users: use forward slashes or quote the path:
  crossr1 convert-file -i "C:/Users/me/Downloads/eq.txt"`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "crossr1",
		Short: "Convert CrossLite EQ exports to R1 presets",
		Long: `crossr1 converts CrossLite EQ text exports (.txt) into d&b R1 EQ
presets (.rcp). Exports with several channels produce one preset per channel.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newConvertFileCmd())
	rootCmd.AddCommand(newConvertDirectoryCmd())
	rootCmd.AddCommand(newHelpConversionCmd())
	return rootCmd
}

func newConvertFileCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "convert-file",
		Short: "Convert a single CrossLite file to R1 format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := pathutil.Resolve(input)
			if info, err := os.Stat(inputPath); err != nil || info.IsDir() {
				msg := "input file does not exist: " + input
				if runtime.GOOS == "windows" {
					msg += "\n" + windowsHint
				}
				return errors.New(msg)
			}

			outputPath := output
			if outputPath == "" {
				outputPath = processing.DefaultOutputPath(inputPath)
			}

			svc := processing.NewConversionService(processing.Options{})
			result, err := svc.ConvertFile(cmd.Context(), inputPath, outputPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch len(result.Written) {
			case 0:
				fmt.Fprintf(out, "No EQ bands found in '%s', nothing written\n", inputPath)
			case 1:
				fmt.Fprintf(out, "Successfully converted '%s' to '%s'\n", inputPath, result.Written[0])
			default:
				fmt.Fprintf(out, "Successfully converted '%s' into %d channel presets:\n", inputPath, len(result.Written))
				for _, path := range result.Written {
					fmt.Fprintf(out, "  %s\n", path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input CrossLite .txt file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .rcp file, or directory for multi-channel exports")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newConvertDirectoryCmd() *cobra.Command {
	var input, output string
	var workers int

	cmd := &cobra.Command{
		Use:   "convert-directory",
		Short: "Convert all .txt files in a directory to R1 format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir := pathutil.Resolve(input)
			outputDir := output
			if outputDir == "" {
				outputDir = inputDir
			}

			svc := processing.NewConversionService(processing.Options{Workers: workers})
			result, err := svc.ConvertDirectory(cmd.Context(), inputDir, outputDir)
			if result == nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Converted %d of %d files from '%s' to '%s'\n",
				result.Converted(), len(result.Files), inputDir, outputDir)
			for _, f := range result.Failed() {
				fmt.Fprintf(out, "  failed: %s: %v\n", f.InputPath, f.Err)
			}
			if err != nil {
				return fmt.Errorf("%d of %d files failed", len(result.Failed()), len(result.Files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input directory containing .txt files")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (defaults to the input directory)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files converted concurrently (0 means one per CPU)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newHelpConversionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help-conversion",
		Short: "Show detailed help for conversion commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), conversionHelp())
		},
	}
}

func conversionHelp() string {
	return fmt.Sprintf(`CrossLite to R1 EQ Converter
============================

Converts CrossLite EQ settings (.txt files) to d&b R1 format (.rcp files).

Commands:

convert-file --input <file.txt> [--output <file.rcp>]
    Convert a single file. Without --output, writes file.rcp next to the input.
    Multi-channel exports write one preset per channel into the output directory.

convert-directory --input <directory> [--output <directory>] [--workers N]
    Convert every .txt file below a directory. Without --output, presets are
    written next to the input files. Multi-channel files get their own directory.

Examples:
    crossr1 convert-file -i example1.txt
    crossr1 convert-file -i example1.txt -o converted/example1.rcp
    crossr1 convert-directory -i ./crosslite-files
    crossr1 convert-directory -i ./crosslite-files -o ./r1-files

Notes:
- Gain values are clamped to R1 limits (%gdB to +%gdB)
- Q factor values are clamped to R1 limits (%g to %.1f)
- R1 format supports up to %d EQ bands
`, converter.MinGainDB, converter.MaxGainDB, converter.MinQ, converter.MaxQ, models.MaxFilters)
}

// Package main provides the CLI entry point for codecbench.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pressley/codecbench"
	"github.com/pressley/codecbench/internal/config"
	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/reporter"
)

const (
	appName    = "codecbench"
	appVersion = "0.3.0"
)

type runArgs struct {
	sourceImage  string
	codecFile    string
	metric       string
	noComparison bool
	decoder      string
	compareTool  string
	convertTool  string
	decodeSuffix string
	diffSuffix   string
	workDir      string
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, "interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var ra runArgs

	rootCmd := &cobra.Command{
		Use:   appName + " -s <image> -c <codecs.yaml>",
		Short: "Benchmark image codecs against a common reference image",
		Long: `Codecbench compares image codecs on identical input. For every codec in
the definition file it runs the codec's encoder, a shared decoder, and a
comparison tool, reporting a quality metric and writing a visual diff.

All produced files accumulate in the working directory as the artifact of
the run; nothing is cleaned up.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return executeRun(cmd.Context(), ra)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&ra.sourceImage, "source-image", "s", "", "reference image every codec is tested against")
	flags.StringVarP(&ra.codecFile, "config", "c", "", "YAML file defining the codecs under test")
	flags.StringVarP(&ra.metric, "metric", "m", config.DefaultMetric, "comparison metric passed to the compare tool")
	flags.BoolVar(&ra.noComparison, "no-quality-comparison", false, "skip the compare step for all codecs")
	flags.StringVarP(&ra.decoder, "jpeg2000-decoder", "d", config.DefaultDecoder, "shared decoder CLI for every codec's bitstream")
	flags.StringVar(&ra.compareTool, "compare", config.DefaultCompareTool(), "comparison tool CLI (env "+config.CompareEnvVar+" overrides the default)")
	flags.StringVar(&ra.convertTool, "convert", config.DefaultConvertTool, "image conversion CLI used to materialize source variants")
	flags.StringVar(&ra.decodeSuffix, "decode-suffix", config.DefaultDecodeSuffix, "file extension for decoded rasters")
	flags.StringVar(&ra.diffSuffix, "diff-suffix", config.DefaultDiffSuffix, "file extension for diff images")
	flags.StringVarP(&ra.workDir, "workdir", "C", ".", "directory where output files accumulate")
	flags.BoolVarP(&ra.verbose, "verbose", "v", false, "enable verbose output for troubleshooting")

	_ = rootCmd.MarkFlagRequired("source-image")
	_ = rootCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	})

	return rootCmd
}

func executeRun(parent context.Context, ra runArgs) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	opts := []codecbench.Option{
		codecbench.WithMetric(ra.metric),
		codecbench.WithDecoder(ra.decoder),
		codecbench.WithCompareTool(ra.compareTool),
		codecbench.WithConvertTool(ra.convertTool),
		codecbench.WithDecodeSuffix(ra.decodeSuffix),
		codecbench.WithDiffSuffix(ra.diffSuffix),
		codecbench.WithWorkDir(ra.workDir),
	}
	if ra.noComparison {
		opts = append(opts, codecbench.WithoutQualityComparison())
	}
	if ra.verbose {
		opts = append(opts, codecbench.WithVerbose())
	}

	rep := reporter.NewTerminalReporter()
	summary, err := codecbench.Run(ctx, ra.sourceImage, ra.codecFile, rep, opts...)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d codecs failed", summary.Failed, summary.Total)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/htmlpack/inliner/inline"
)

var (
	baseDir    string
	outputPath string
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inliner <input>",
	Short: "Bundle the resources referenced by an HTML file into a single file",
	Long: `inliner parses an HTML file and rewrites every href/src reference in place:
text resources (html, js, css) are embedded as element content, everything
else becomes a base64 data URI. The result is one self-contained document.

Links are resolved against the base directory, which defaults to the current
working directory.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&baseDir, "base", "b", ".", "directory which links will be resolved against")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config controlling which references are inlined")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	defer func() {
		_ = logger.Sync()
	}()

	cfg := inline.DefaultConfig()

	if configPath != "" {
		var err error

		cfg, err = inline.Load(configPath)
		if err != nil {
			return err
		}
	}

	input, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer input.Close()

	logger.Debug("inlining document",
		zap.String("input", args[0]),
		zap.String("base", baseDir))

	result, err := inline.New(baseDir, cfg, logger).Inline(args[0], input)
	if err != nil {
		return fmt.Errorf("inlining html: %w", err)
	}

	if outputPath == "" {
		_, err = os.Stdout.WriteString(result)
		return err
	}

	return os.WriteFile(outputPath, []byte(result), 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// Command mockdata writes a synthetic social-media metrics dataset.
//
// With no flags it writes 10 posts to mock_data.csv in the working directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"socially/internal/logger"
	"socially/internal/mockdata"
	"socially/services"

	"github.com/spf13/cobra"
)

const defaultBaseName = "mock_data"

type options struct {
	count   int
	out     string
	format  string
	seed    uint64
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "mockdata",
		Short:         "Generate synthetic post metrics for the analytics dashboard",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitCLILogger(cmd.ErrOrStderr(), opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().IntVar(&opts.count, "count", 10, "number of posts to generate")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file path (default mock_data.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "output format: csv or xlsx")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

func run(opts *options) error {
	if opts.count < 0 {
		return fmt.Errorf("--count must be >= 0, got %d", opts.count)
	}
	format, err := services.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	out, err := outputPath(opts.out, format)
	if err != nil {
		return err
	}

	gen := mockdata.NewGenerator(nil)
	if opts.seed != 0 {
		gen = mockdata.NewSeededGenerator(opts.seed)
	}
	logger.Debug("Generating posts", "count", opts.count, "seed", opts.seed, "format", string(format))

	return services.NewExportService(nil).Export(out, format, gen.Generate(opts.count))
}

// outputPath picks mock_data.<format> when out is empty and refuses a .csv or
// .xlsx path that names the other format
func outputPath(out string, format services.Format) (string, error) {
	if out == "" {
		return defaultBaseName + "." + string(format), nil
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	if other, err := services.ParseFormat(ext); err == nil && other != format {
		return "", fmt.Errorf("--out %q does not match --format %s", out, format)
	}
	return out, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mockdata:", err)
		os.Exit(1)
	}
}

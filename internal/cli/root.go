// Package cli provides the command-line interface for metcolour.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go-metcolour/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// app carries state shared by the subcommands of one root command.
type app struct {
	verbose bool
	quiet   bool
	logger  *slog.Logger
}

// NewRootCommand builds the metcolour command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "metcolour",
		Short: "Dominant colours of museum collection images",
		Long: `metcolour fetches object images from the Metropolitan Museum collection API,
extracts each image's dominant colour and classifies its palette as Red, Green,
Blue or None (greyscale), and writes the results to images.json.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newObjectCommand(a))
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "metcolour", Version)
		},
	})

	return rootCmd
}

// Execute runs the root command against os.Args. Called by main.main().
// SIGINT cancels in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prosodylab/prochop/pkg/cli"
)

var (
	// Global flags
	verbose bool
	noColor bool

	// Global defaults (loaded at init time)
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "prochop",
	Short: "Segment audio recordings into separate files based on annotations",
	Long: `prochop - Segment audio recordings into separate files based on
ProRec annotations.

prochop is a replacement for Mark Huckvale's ProChop (part of ProRec),
which chops up a recording into separate files, based on an annotation
file containing the break points. It is designed to work with files
recorded using ProRec, the prompt & record program by Mark Huckvale
(https://www.phon.ucl.ac.uk/resource/prorec).

Each line of an annotation file consists of a time in seconds followed
by a TAB and a filename label. Consecutive break points bound one output
file; the final break point closes the recording and produces no file.

Note: as compared to the original ProChop, prochop does not implement
export to the proprietary format of the Speech Filing System (SFS), and
does not support silence detection (the ProChop -s option).

Examples:
  # Chop a recording into per-section WAV files
  prochop chop -a session.wav -t session.txt -o out/

  # Keep duplicate labels with numbered suffixes, write a manifest
  prochop chop -a session.wav -t session.txt -o out/ -k --manifest out/manifest.yaml

  # Inspect the inputs without writing anything
  prochop probe -a session.wav -t session.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

func initConfig() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		// Defaults are optional; fall back to the zero config so that
		// commands still run when HOME is unset.
		cfg = &cli.Config{}
	}
	globalConfig = cfg
	if globalConfig.NoColor {
		noColor = true
	}
}

// getConfig returns the loaded defaults, loading them on demand when
// commands are invoked outside of cobra's lifecycle (tests).
func getConfig() *cli.Config {
	if globalConfig == nil {
		initConfig()
	}
	return globalConfig
}

// getStyles returns the console styles honoring --no-color.
func getStyles() cli.Styles {
	if noColor {
		return cli.PlainStyles()
	}
	return cli.NewStyles(cli.DefaultTheme)
}

// newLogger returns the slog logger for the current verbosity.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prosodylab/prochop/pkg/annot"
	"github.com/prosodylab/prochop/pkg/chop"
	"github.com/prosodylab/prochop/pkg/cli"
	"github.com/prosodylab/prochop/pkg/wave"
)

var (
	chopAudio       string
	chopAnnotations string
	chopOutputDir   string
	chopFormat      string
	chopKeep        bool
	chopTrim        bool
	chopManifest    string
)

var chopCmd = &cobra.Command{
	Use:   "chop",
	Short: "Segment an audio recording into per-section files",
	Long: `Segment an audio recording into separate files, one per annotated
section.

The annotation file lists break points: a time in seconds, a TAB, and a
filename label per line. Each break point opens a section that the next
break point closes, so N break points produce N-1 output files; the
label of the final break point only marks the end of the recording.

Output files are named <label>.wav inside the output directory, which
is created if absent. By default a label that occurs more than once
overwrites its earlier file; with -k, repeats get a numbered suffix
(label-2.wav, label-3.wav, ...).

Examples:
  prochop chop -a session.wav -t session.txt -o out/
  prochop chop -a session.wav -t session.txt -o out/ -k
  prochop chop -a session.wav -t session.txt -o out/ --manifest manifest.json`,
	RunE: runChop,
}

func runChop(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	styles := getStyles()

	name := chopFormat
	if name == "" {
		name = cfg.DefaultFormat
	}
	if name == "" {
		name = string(chop.FormatWAV)
	}
	format, err := chop.ParseFormat(name)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render("Chopping audio file with prochop..."))

	var counterWidth, labelWidth int

	result, err := chop.Run(chop.Options{
		Audio:          chopAudio,
		Annotations:    chopAnnotations,
		OutputDir:      chopOutputDir,
		Format:         format,
		KeepDuplicates: chopKeep || cfg.KeepDuplicates,
		TrimSilence:    chopTrim,
		Logger:         newLogger(),
		Start: func(info wave.Info, index *annot.Index) {
			counterWidth = len(strconv.Itoa(index.Len()))
			labelWidth = index.MaxLabelLen()
			printField(styles, "Annotation file:  ", styles.Name.Render(index.Path()))
			printField(styles, "  - Sections:     ", styles.Value.Render(strconv.Itoa(index.Len())))
			printField(styles, "Source audio file:", styles.Name.Render(chopAudio))
			printField(styles, "  - Channels:     ", styles.Value.Render(strconv.Itoa(info.Channels)))
			printField(styles, "  - Sample rate:  ", styles.Value.Render(fmt.Sprintf("%dHz", info.SampleRate)))
			printField(styles, "  - Length:       ", styles.Value.Render(cli.FormatSeconds(info.Duration())))
			printField(styles, "Output directory: ", styles.Name.Render(chopOutputDir))
		},
		Progress: func(n, total int, sec annot.Section, path string) {
			if n > 1 {
				cli.ClearLine(os.Stdout)
			}
			fmt.Printf("%s  %s %s %s",
				styles.Title.Render("Processing files:"),
				styles.Value.Render(fmt.Sprintf("%*d/%d", counterWidth, n, total)),
				styles.Name.Render(pad(sec.Label, labelWidth)),
				styles.Dim.Render(fmt.Sprintf("(%gs to %gs)", sec.Start, sec.End)))
		},
	})
	if err != nil {
		return err
	}

	if len(result.Sections) > 0 {
		fmt.Println()
	}
	fmt.Println(styles.Title.Render("Chopping completed."))

	if chopManifest != "" {
		outFormat := cli.FormatYAML
		if strings.HasSuffix(chopManifest, ".json") {
			outFormat = cli.FormatJSON
		}
		if err := cli.Output(result, cli.OutputOptions{Format: outFormat, File: chopManifest}); err != nil {
			return err
		}
		cli.PrintSuccess("manifest written to %s", chopManifest)
	}
	return nil
}

// printField prints one dim field label with a styled value.
func printField(styles cli.Styles, label, value string) {
	fmt.Printf("%s %s\n", styles.Dim.Render(label), value)
}

// pad right-pads a label to the given width for column alignment.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	chopCmd.Flags().StringVarP(&chopAudio, "audio", "a", "", "audio file to be segmented (1 or 2 channels)")
	chopCmd.Flags().StringVarP(&chopAnnotations, "annotations", "t", "", "annotation text file containing the break points")
	chopCmd.Flags().StringVarP(&chopOutputDir, "output", "o", "", "output directory for the separate files")
	chopCmd.Flags().StringVarP(&chopFormat, "format", "f", "", "output file format: wav or sfs (default wav)")
	chopCmd.Flags().BoolVarP(&chopKeep, "keep-duplicates", "k", false, "give duplicate labels a numbered suffix instead of overwriting")
	chopCmd.Flags().BoolVarP(&chopTrim, "trim-silence", "s", false, "remove silence at section edges (recognized, not implemented)")
	chopCmd.Flags().StringVar(&chopManifest, "manifest", "", "write a manifest of the produced files (.yaml or .json)")

	chopCmd.MarkFlagRequired("audio")
	chopCmd.MarkFlagRequired("annotations")
	chopCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(chopCmd)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prosodylab/prochop/pkg/annot"
	"github.com/prosodylab/prochop/pkg/cli"
	"github.com/prosodylab/prochop/pkg/wave"
)

var (
	probeAudio       string
	probeAnnotations string
	probeFormat      string
)

// audioReport describes a probed audio container.
type audioReport struct {
	Path     string    `yaml:"path" json:"path"`
	Info     wave.Info `yaml:"info" json:"info"`
	Duration float64   `yaml:"duration_seconds" json:"duration_seconds"`
}

// annotationReport describes a probed annotation file.
type annotationReport struct {
	Path     string          `yaml:"path" json:"path"`
	Markers  int             `yaml:"markers" json:"markers"`
	Sections []annot.Section `yaml:"sections" json:"sections"`
}

// probeReport is the combined probe result.
type probeReport struct {
	Audio       *audioReport      `yaml:"audio,omitempty" json:"audio,omitempty"`
	Annotations *annotationReport `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Inspect an audio or annotation file without writing output",
	Long: `Read the header of an audio file and/or parse an annotation file and
report what a chop run would see, without writing any output.

Output is YAML by default; use -F json for JSON.

Examples:
  prochop probe -a session.wav
  prochop probe -t session.txt
  prochop probe -a session.wav -t session.txt -F json`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	if probeAudio == "" && probeAnnotations == "" {
		return fmt.Errorf("at least one of --audio or --annotations is required")
	}

	var report probeReport

	if probeAudio != "" {
		r, err := wave.Open(probeAudio)
		if err != nil {
			return err
		}
		defer r.Close()
		info := r.Info()
		report.Audio = &audioReport{
			Path:     r.Path(),
			Info:     info,
			Duration: info.Duration(),
		}
	}

	if probeAnnotations != "" {
		index, err := annot.Load(probeAnnotations)
		if err != nil {
			return err
		}
		report.Annotations = &annotationReport{
			Path:     index.Path(),
			Markers:  len(index.Markers()),
			Sections: index.Sections(),
		}
	}

	return cli.Output(report, cli.OutputOptions{Format: cli.OutputFormat(probeFormat)})
}

func init() {
	probeCmd.Flags().StringVarP(&probeAudio, "audio", "a", "", "audio file to inspect")
	probeCmd.Flags().StringVarP(&probeAnnotations, "annotations", "t", "", "annotation file to inspect")
	probeCmd.Flags().StringVarP(&probeFormat, "format", "F", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(probeCmd)
}

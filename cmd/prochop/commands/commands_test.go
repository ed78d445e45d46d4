package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prosodylab/prochop/pkg/cli"
	"github.com/prosodylab/prochop/pkg/wave"
)

// writeFixture writes a short mono 16-bit recording and a matching
// annotation file into a temp dir.
func writeFixture(t *testing.T) (audio, annots string) {
	t.Helper()
	dir := t.TempDir()

	info := wave.Info{
		Channels:        1,
		SampleWidth:     2,
		SampleRate:      44100,
		Compression:     wave.CompressionNone,
		CompressionName: "not compressed",
	}
	data := make([]byte, 88200*info.BlockAlign()) // 2 seconds
	for i := range data {
		data[i] = byte(i % 251)
	}

	audio = filepath.Join(dir, "session.wav")
	w, err := wave.Create(audio, info)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	annots = filepath.Join(dir, "session.txt")
	content := "0.0\tintro\n1.0\tbody\n2.0\tend\n"
	if err := os.WriteFile(annots, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return audio, annots
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	verbose = false
	noColor = true
	globalConfig = &cli.Config{}

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var outBuf, errBuf bytes.Buffer
	outBuf.ReadFrom(rOut)
	errBuf.ReadFrom(rErr)

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		if stderr == "" {
			stderr = err.Error()
		}
	}

	resetFlags(rootCmd)
	return
}

// resetFlags restores every flag in the command tree to its default so
// tests do not leak state into each other.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

package commands

import (
	"strings"
	"testing"
)

func TestProbeAudio(t *testing.T) {
	audio, _ := writeFixture(t)

	stdout, stderr, code := runCmd(t, "probe", "-a", audio)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"sample_rate: 44100", "channels: 1", "frames: 88200"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got: %s", want, stdout)
		}
	}
}

func TestProbeAnnotations(t *testing.T) {
	_, annots := writeFixture(t)

	stdout, stderr, code := runCmd(t, "probe", "-t", annots)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "markers: 3") {
		t.Errorf("expected 3 markers, got: %s", stdout)
	}
	if !strings.Contains(stdout, "label: intro") {
		t.Errorf("expected intro section, got: %s", stdout)
	}
}

func TestProbeJSON(t *testing.T) {
	audio, _ := writeFixture(t)

	stdout, stderr, code := runCmd(t, "probe", "-a", audio, "-F", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"sample_rate": 44100`) {
		t.Errorf("expected JSON output, got: %s", stdout)
	}
}

func TestProbeNoInputs(t *testing.T) {
	_, stderr, code := runCmd(t, "probe")
	if code == 0 {
		t.Fatal("expected error when neither input is given")
	}
	if !strings.Contains(stderr, "required") {
		t.Fatalf("expected 'required', got: %s", stderr)
	}
}

package synth

import (
	"os"
	"path/filepath"
	"testing"
)

func writePatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPatch(t *testing.T) {
	path := writePatch(t, `
polyphony = 6
sample-rate = 44100
algorithm = 4
feedback = 0.25

[[operator]]
wave = "saw"
detune = 1.0
attack = 480
decay = 24000
sustain = 0.6
release = 9600
volume = 0.9

[[operator]]
wave = "sine"
detune = 2.0
`)
	p, err := LoadPatch(path)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 6, p.Polyphony; want != got {
		t.Errorf("polyphony: expected %v, got %v", want, got)
	}
	if want, got := 44100, p.SampleRate; want != got {
		t.Errorf("sample-rate: expected %v, got %v", want, got)
	}
	if want, got := numOperators, len(p.Operators); want != got {
		t.Fatalf("expected %v operators after normalization, got %v", want, got)
	}
	if want, got := "saw", p.Operators[0].Wave; want != got {
		t.Errorf("operator 1 wave: expected %v, got %v", want, got)
	}
	if want, got := 0.9, p.Operators[0].Volume; want != got {
		t.Errorf("operator 1 volume: expected %v, got %v", want, got)
	}
	// Omitted fields fall back to defaults.
	if want, got := 2.0, p.Operators[1].Detune; want != got {
		t.Errorf("operator 2 detune: expected %v, got %v", want, got)
	}
	if want, got := 1.0, p.Operators[1].Volume; want != got {
		t.Errorf("operator 2 volume should default to %v, got %v", want, got)
	}
	if want, got := "sine", p.Operators[2].Wave; want != got {
		t.Errorf("missing operator should default to %v, got %v", want, got)
	}
}

func TestLoadPatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `polyphony = [`},
		{"bad wave", "[[operator]]\nwave = \"triangle\"\n"},
		{"negative polyphony", `polyphony = -1`},
		{"bad sustain", "[[operator]]\nsustain = 1.5\n"},
		{"negative envelope", "[[operator]]\nattack = -5\n"},
		{"too many operators", "[[operator]]\n[[operator]]\n[[operator]]\n[[operator]]\n[[operator]]\n"},
	}
	for _, tt := range tests {
		path := writePatch(t, tt.content)
		if _, err := LoadPatch(path); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestLoadPatchMissingFile(t *testing.T) {
	if _, err := LoadPatch(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPatchOutOfRangeAlgorithmAccepted(t *testing.T) {
	// Unknown algorithm ids are not load errors: the voice falls back to the
	// all-parallel routing at render time.
	path := writePatch(t, `algorithm = 42`)
	p, err := LoadPatch(path)
	if err != nil {
		t.Fatal(err)
	}
	v := NewVoice(p, p.Algorithm, 0)
	if want, got := numOperators, len(v.algo.carriers); want != got {
		t.Errorf("expected the fallback routing with %v carriers, got %v", want, got)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		p, err := Preset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if want, got := numOperators, len(p.Operators); want != got {
			t.Errorf("preset %s: expected %v operators, got %v", name, want, got)
		}
		if p.Polyphony < 1 {
			t.Errorf("preset %s: bad polyphony %v", name, p.Polyphony)
		}
	}
	if _, err := Preset("nope"); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	a, err := Preset("glass-bells")
	if err != nil {
		t.Fatal(err)
	}
	a.Polyphony = 99
	a.Operators[0].Wave = "pulse"

	b, err := Preset("glass-bells")
	if err != nil {
		t.Fatal(err)
	}
	if b.Polyphony == 99 {
		t.Error("mutating a preset copy leaked into the stored preset")
	}
	if b.Operators[0].Wave == "pulse" {
		t.Error("mutating a preset's operators leaked into the stored preset")
	}
}

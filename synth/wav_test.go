package synth

import (
	"bytes"
	"io"
	"testing"
	"time"

	wav "github.com/youpy/go-wav"
)

func TestRenderWAV(t *testing.T) {
	patch := flatPatch(4)
	notes := []RenderNote{
		{Note: 60, Velocity: 100, Start: 0, Duration: 50 * time.Millisecond},
		{Note: 64, Velocity: 100, Start: 20 * time.Millisecond, Duration: 50 * time.Millisecond},
	}

	var buf bytes.Buffer
	if err := RenderWAV(&buf, patch, notes, 100*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	r := wav.NewReader(bytes.NewReader(buf.Bytes()))
	format, err := r.Format()
	if err != nil {
		t.Fatal(err)
	}
	if want, got := uint32(48000), format.SampleRate; want != got {
		t.Errorf("sample rate: expected %v, got %v", want, got)
	}
	if want, got := uint16(2), format.NumChannels; want != got {
		t.Errorf("channels: expected %v, got %v", want, got)
	}

	var frames int
	var nonZero bool
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range samples {
			if s.Values[0] != 0 || s.Values[1] != 0 {
				nonZero = true
			}
		}
		frames += len(samples)
	}
	if want := 4800; frames != want {
		t.Errorf("expected exactly %v frames, got %v", want, frames)
	}
	if !nonZero {
		t.Error("rendered audio is all zeros")
	}
}

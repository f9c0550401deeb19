package synth

import (
	"math"
	"testing"
)

func TestEnvelopeAttackMonotonic(t *testing.T) {
	env := envelope{attack: 48, decay: 100, sustain: 0.5, release: 100}
	env.noteOn()

	var level float64
	for i := 0; i < 24; i++ {
		level = env.advance()
	}
	if math.Abs(level-0.5) > 1e-9 {
		t.Errorf("expected level 0.5 halfway through attack, got %v", level)
	}
	for i := 0; i < 24; i++ {
		level = env.advance()
	}
	if level != 1.0 {
		t.Errorf("expected level 1.0 at end of attack, got %v", level)
	}
	if want, got := stageDecay, env.stage; want != got {
		t.Errorf("expected stage %v after attack, got %v", want, got)
	}
}

func TestEnvelopeDecayToSustain(t *testing.T) {
	env := envelope{attack: 0, decay: 10, sustain: 0.6, release: 10}
	env.noteOn()
	env.advance() // instantaneous attack

	var level float64
	for i := 0; i < 10; i++ {
		level = env.advance()
	}
	if level != 0.6 {
		t.Errorf("expected sustain level 0.6 after decay, got %v", level)
	}
	if want, got := stageSustain, env.stage; want != got {
		t.Errorf("expected stage %v, got %v", want, got)
	}
	for i := 0; i < 100; i++ {
		if got := env.advance(); got != 0.6 {
			t.Fatalf("sustain should hold at 0.6, got %v", got)
		}
	}
}

func TestEnvelopeReleaseToIdle(t *testing.T) {
	env := envelope{attack: 0, decay: 0, sustain: 0.8, release: 16}
	env.noteOn()
	env.advance()
	env.advance()
	env.noteOff()

	if env.silent() {
		t.Fatal("envelope should not be silent at start of release")
	}
	var level float64
	for i := 0; i < 8; i++ {
		level = env.advance()
	}
	if math.Abs(level-0.4) > 1e-9 {
		t.Errorf("expected level 0.4 halfway through release, got %v", level)
	}
	for i := 0; i < 8; i++ {
		level = env.advance()
	}
	if level != 0 {
		t.Errorf("expected level 0 after release, got %v", level)
	}
	if !env.silent() {
		t.Error("envelope should be silent after release completes")
	}
}

func TestEnvelopeRetriggerKeepsLevel(t *testing.T) {
	env := envelope{attack: 10, decay: 10, sustain: 0.5, release: 10}
	env.noteOn()
	for i := 0; i < 5; i++ {
		env.advance()
	}
	level := env.level

	// A retrigger must ramp from the current level, not drop back to zero.
	env.noteOn()
	if got := env.advance(); got < level {
		t.Errorf("retrigger dropped level from %v to %v", level, got)
	}
}

func TestEnvelopeInstantaneousStages(t *testing.T) {
	env := envelope{attack: 0, decay: 0, sustain: 0.3, release: 0}
	env.noteOn()
	if got := env.advance(); got != 1.0 {
		t.Errorf("zero-length attack should hit 1.0 immediately, got %v", got)
	}
	if got := env.advance(); got != 0.3 {
		t.Errorf("zero-length decay should hit sustain immediately, got %v", got)
	}
	env.noteOff()
	if got := env.advance(); got != 0 {
		t.Errorf("zero-length release should hit 0 immediately, got %v", got)
	}
	if !env.silent() {
		t.Error("envelope should be idle after zero-length release")
	}
}

func TestEnvelopeZeroSustainGoesIdle(t *testing.T) {
	env := envelope{attack: 0, decay: 4, sustain: 0, release: 10}
	env.noteOn()
	for i := 0; i < 8; i++ {
		env.advance()
	}
	if !env.silent() {
		t.Error("envelope with zero sustain should fall idle after decay")
	}
}

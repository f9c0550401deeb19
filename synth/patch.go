package synth

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// A Patch holds everything needed to construct an engine: global settings
// plus one section per operator. Patches are plain TOML files:
//
//	polyphony = 8
//	sample-rate = 48000
//	algorithm = 2
//	feedback = 0.3
//
//	[[operator]]
//	wave = "sine"
//	detune = 1.0
//	attack = 480
//	decay = 24000
//	sustain = 0.6
//	release = 9600
//	volume = 1.0
//
// Missing operator sections fall back to the defaults of an init patch.
type Patch struct {
	Name       string          `toml:"name"`
	Polyphony  int             `toml:"polyphony"`
	SampleRate int             `toml:"sample-rate"`
	Algorithm  int             `toml:"algorithm"`
	Feedback   float64         `toml:"feedback"`
	Operators  []OperatorPatch `toml:"operator"`
}

// OperatorPatch configures a single operator. Envelope times are in samples,
// detune is a ratio applied to the voice pitch. Omitted wave, detune and
// volume values fall back to "sine", 1.0 and 1.0.
type OperatorPatch struct {
	Wave    string  `toml:"wave"`
	Detune  float64 `toml:"detune"`
	Attack  int     `toml:"attack"`
	Decay   int     `toml:"decay"`
	Sustain float64 `toml:"sustain"`
	Release int     `toml:"release"`
	Volume  float64 `toml:"volume"`
}

func defaultOperator() OperatorPatch {
	return OperatorPatch{
		Wave:    "sine",
		Detune:  1.0,
		Attack:  48,
		Decay:   48000,
		Sustain: 0.7,
		Release: 12000,
		Volume:  1.0,
	}
}

// DefaultPatch is a plain 8-voice sine patch.
func DefaultPatch() *Patch {
	p := &Patch{
		Name:       "init",
		Polyphony:  8,
		SampleRate: 48000,
		Algorithm:  0,
		Feedback:   0,
	}
	for i := 0; i < numOperators; i++ {
		p.Operators = append(p.Operators, defaultOperator())
	}
	return p
}

// LoadPatch reads and validates a TOML patch file.
func LoadPatch(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Patch
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse patch %s: %w", path, err)
	}
	if err := p.normalize(); err != nil {
		return nil, fmt.Errorf("patch %s: %w", path, err)
	}
	return &p, nil
}

// normalize fills in defaults and rejects values the engine cannot run with.
// An out of range algorithm id is not an error: the voice falls back to the
// all-parallel routing.
func (p *Patch) normalize() error {
	if p.Polyphony == 0 {
		p.Polyphony = 8
	}
	if p.Polyphony < 1 {
		return fmt.Errorf("polyphony must be at least 1, got %v", p.Polyphony)
	}
	if p.SampleRate == 0 {
		p.SampleRate = 48000
	}
	if p.SampleRate < 1 {
		return fmt.Errorf("sample-rate must be positive, got %v", p.SampleRate)
	}
	if len(p.Operators) > numOperators {
		return fmt.Errorf("at most %v operator sections allowed, got %v", numOperators, len(p.Operators))
	}
	for len(p.Operators) < numOperators {
		p.Operators = append(p.Operators, defaultOperator())
	}
	for i := range p.Operators {
		op := &p.Operators[i]
		if op.Wave == "" {
			op.Wave = "sine"
		}
		if _, err := tableByName(op.Wave); err != nil {
			return fmt.Errorf("operator %v: %w", i+1, err)
		}
		if op.Detune == 0 {
			op.Detune = 1.0
		}
		if op.Detune < 0 {
			return fmt.Errorf("operator %v: detune must be positive, got %v", i+1, op.Detune)
		}
		if op.Attack < 0 || op.Decay < 0 || op.Release < 0 {
			return fmt.Errorf("operator %v: envelope times must be non-negative", i+1)
		}
		if op.Sustain < 0 || op.Sustain > 1 {
			return fmt.Errorf("operator %v: sustain level must be in 0..1, got %v", i+1, op.Sustain)
		}
		if op.Volume == 0 {
			op.Volume = 1.0
		}
		if op.Volume < 0 || op.Volume > 1 {
			return fmt.Errorf("operator %v: volume must be in 0..1, got %v", i+1, op.Volume)
		}
	}
	return nil
}

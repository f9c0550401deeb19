package synth

import (
	"fmt"
	"sort"
)

var presets = map[string]*Patch{
	"init": DefaultPatch(),
	"glass-bells": {
		Name:       "glass-bells",
		Polyphony:  8,
		SampleRate: 48000,
		Algorithm:  2,
		Feedback:   0.2,
		Operators: []OperatorPatch{
			{Wave: "sine", Detune: 1.0, Attack: 48, Decay: 96000, Sustain: 0, Release: 24000, Volume: 1.0},
			{Wave: "sine", Detune: 3.51, Attack: 48, Decay: 48000, Sustain: 0, Release: 12000, Volume: 0.6},
			{Wave: "sine", Detune: 1.99, Attack: 480, Decay: 72000, Sustain: 0, Release: 24000, Volume: 0.8},
			{Wave: "sine", Detune: 7.03, Attack: 48, Decay: 24000, Sustain: 0, Release: 4800, Volume: 0.3},
		},
	},
	"solid-bass": {
		Name:       "solid-bass",
		Polyphony:  6,
		SampleRate: 48000,
		Algorithm:  0,
		Feedback:   0.4,
		Operators: []OperatorPatch{
			{Wave: "sine", Detune: 0.5, Attack: 48, Decay: 48000, Sustain: 0.8, Release: 4800, Volume: 1.0},
			{Wave: "sine", Detune: 1.0, Attack: 48, Decay: 24000, Sustain: 0.3, Release: 2400, Volume: 0.7},
			{Wave: "saw", Detune: 1.0, Attack: 4800, Decay: 48000, Sustain: 0.2, Release: 2400, Volume: 0.4},
			{Wave: "sine", Detune: 2.0, Attack: 48, Decay: 9600, Sustain: 0, Release: 2400, Volume: 0.5},
		},
	},
	"brass-pad": {
		Name:       "brass-pad",
		Polyphony:  10,
		SampleRate: 48000,
		Algorithm:  5,
		Feedback:   0.3,
		Operators: []OperatorPatch{
			{Wave: "saw", Detune: 1.0, Attack: 14400, Decay: 48000, Sustain: 0.8, Release: 24000, Volume: 1.0},
			{Wave: "saw", Detune: 1.005, Attack: 19200, Decay: 48000, Sustain: 0.8, Release: 24000, Volume: 0.9},
			{Wave: "sine12", Detune: 0.995, Attack: 24000, Decay: 48000, Sustain: 0.7, Release: 24000, Volume: 0.8},
			{Wave: "sine", Detune: 1.0, Attack: 9600, Decay: 96000, Sustain: 0.4, Release: 12000, Volume: 0.5},
		},
	},
	"pulse-organ": {
		Name:       "pulse-organ",
		Polyphony:  8,
		SampleRate: 48000,
		Algorithm:  11,
		Feedback:   0,
		Operators: []OperatorPatch{
			{Wave: "sine", Detune: 1.0, Attack: 480, Decay: 0, Sustain: 1.0, Release: 2400, Volume: 1.0},
			{Wave: "sine", Detune: 2.0, Attack: 480, Decay: 0, Sustain: 0.7, Release: 2400, Volume: 0.7},
			{Wave: "sine", Detune: 4.0, Attack: 480, Decay: 0, Sustain: 0.5, Release: 2400, Volume: 0.5},
			{Wave: "pulse", Detune: 1.0, Attack: 960, Decay: 0, Sustain: 0.2, Release: 2400, Volume: 0.2},
		},
	},
}

// Preset returns a copy of a built-in patch, so callers can tweak it without
// affecting later lookups.
func Preset(name string) (*Patch, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %v", name)
	}
	copy := *p
	copy.Operators = append([]OperatorPatch(nil), p.Operators...)
	if err := copy.normalize(); err != nil {
		return nil, err
	}
	return &copy, nil
}

// PresetNames lists the built-in patches, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

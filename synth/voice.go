package synth

// A Voice is one complete four-operator phase modulator, able to sound a
// single note at a time. The selected algorithm decides which operators
// modulate which others and which sum into the output.
type Voice struct {
	ops      [numOperators]operator
	detune   [numOperators]float64
	feedback float64
	algo     algorithm

	// lastPitch gates note offs: a voice that was retriggered for a new
	// pitch must not be cut short by a stale note off for the old one.
	lastPitch float64
	hasPitch  bool

	bufs [numOperators][]float64
	mod  []float64
}

// NewVoice builds a voice from the patch's operator sections. The wave names
// are assumed valid; patches are normalized before they get here.
func NewVoice(patch *Patch, algo int, feedback float64) *Voice {
	v := &Voice{
		feedback: feedback,
		algo:     algorithmFor(algo),
	}
	for i := 0; i < numOperators; i++ {
		cfg := patch.Operators[i]
		table, err := tableByName(cfg.Wave)
		if err != nil {
			table = sineTable
		}
		v.ops[i] = operator{
			table:      table,
			sampleRate: float64(patch.SampleRate),
			volume:     cfg.Volume,
			env: envelope{
				attack:  cfg.Attack,
				decay:   cfg.Decay,
				sustain: cfg.Sustain,
				release: cfg.Release,
			},
		}
		v.detune[i] = cfg.Detune
		v.bufs[i] = make([]float64, maxBlockFrames)
	}
	v.mod = make([]float64, maxBlockFrames)
	return v
}

func (v *Voice) NoteOn(pitch, velocity float64) {
	v.lastPitch = pitch
	v.hasPitch = true
	for i := range v.ops {
		v.ops[i].noteOn(pitch*v.detune[i], velocity)
	}
}

// NoteOff releases the voice, but only if pitch matches the note the voice
// is currently playing. A mismatch means a later NoteOn superseded the note
// this off was meant for, and the event is dropped.
func (v *Voice) NoteOff(pitch float64) {
	if !v.hasPitch || v.lastPitch != pitch {
		return
	}
	for i := range v.ops {
		v.ops[i].noteOff()
	}
	v.hasPitch = false
}

// Pitch returns the pitch of the note the voice is holding, or 0 if the
// voice got its note off.
func (v *Voice) Pitch() (float64, bool) {
	return v.lastPitch, v.hasPitch
}

func (v *Voice) SetAlgorithm(id int) {
	v.algo = algorithmFor(id)
}

func (v *Voice) SetFeedback(f float64) {
	v.feedback = f
}

// Render evaluates the routing graph for one block. Operators render from
// the deepest modulator down, so every modulation buffer is complete before
// the operator it feeds runs. Carriers sum into out, hard-clipped.
func (v *Voice) Render(out []float64) {
	n := len(out)
	for i := numOperators - 1; i >= 0; i-- {
		mods := v.algo.modulators[i]
		var mod []float64
		if len(mods) > 0 {
			mod = v.mod[:n]
			for j := range mod {
				mod[j] = 0
			}
			for _, m := range mods {
				src := v.bufs[m][:n]
				for j := range mod {
					mod[j] += src[j]
				}
			}
		}
		buf := v.bufs[i][:n]
		v.ops[i].render(mod, buf)
		if i == numOperators-1 && v.feedback != 0 {
			// Self-gain saturation on the deepest modulator: boost and clamp,
			// not a filter.
			for j := range buf {
				buf[j] = clamp(buf[j] + v.feedback*buf[j])
			}
		}
	}
	for j := range out {
		out[j] = 0
	}
	for _, c := range v.algo.carriers {
		src := v.bufs[c][:n]
		for j := range out {
			out[j] += src[j]
		}
	}
	for j := range out {
		out[j] = clamp(out[j])
	}
}

// Silent reports whether the voice produces no signal. Only operators that
// are audible under the current algorithm (its carriers) are inspected: a
// pure modulator's envelope state cannot make a voice audible.
func (v *Voice) Silent() bool {
	for _, c := range v.algo.carriers {
		if !v.ops[c].silent() {
			return false
		}
	}
	return true
}

// Released reports whether every audible operator got its note off, making
// the voice the least disruptive candidate to steal.
func (v *Voice) Released() bool {
	for _, c := range v.algo.carriers {
		if !v.ops[c].released() {
			return false
		}
	}
	return true
}

func clamp(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

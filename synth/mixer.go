package synth

import "sync/atomic"

// Mixer is the stereo output stage: it pulls every voice through a constant
// gain panner, scales by 1/polyphony and interleaves left/right. It holds on
// to the voice pool it last saw; when the synth's generation changes the
// chain is rebuilt before rendering, within the same call, so the audio
// driver always gets the full block it asked for.
type Mixer struct {
	synth      *Synth
	generation uint64
	voices     []*Voice
	pans       []float64
	mono       []float64

	faults uint64 // read with atomic on the control path
}

func NewMixer(s *Synth) *Mixer {
	m := &Mixer{
		synth: s,
		pans:  make([]float64, len(s.Voices())),
		mono:  make([]float64, maxBlockFrames),
	}
	m.rebuild()
	return m
}

// rebuild captures the current voice pool and spreads the voices evenly
// across the stereo field.
func (m *Mixer) rebuild() {
	m.voices = m.synth.Voices()
	n := len(m.voices)
	for i := range m.pans {
		if n > 1 {
			m.pans[i] = 2*float64(i)/float64(n-1) - 1
		} else {
			m.pans[i] = 0
		}
	}
	m.generation = m.synth.Generation()
}

// Render fills out with interleaved stereo samples, len(out)/2 frames. Any
// panic below this point degrades the block to silence instead of killing
// the audio stream; occurrences are counted for the control path to report.
func (m *Mixer) Render(out []float64) {
	defer func() {
		if r := recover(); r != nil {
			for i := range out {
				out[i] = 0
			}
			atomic.AddUint64(&m.faults, 1)
		}
	}()

	if m.generation != m.synth.Generation() {
		m.rebuild()
	}

	for i := range out {
		out[i] = 0
	}
	frames := len(out) / 2
	mixDown := 1 / float64(len(m.voices))
	for i, v := range m.voices {
		mono := m.mono[:frames]
		v.Render(mono)
		pan := m.pans[i]
		lg := (1 - pan) / 2 * mixDown
		rg := (1 + pan) / 2 * mixDown
		for j, s := range mono {
			out[2*j] += lg * s
			out[2*j+1] += rg * s
		}
	}
	for i := range out {
		out[i] = clamp(out[i])
	}
}

// Faults counts render calls that degraded to silence after a recovered
// panic.
func (m *Mixer) Faults() uint64 {
	return atomic.LoadUint64(&m.faults)
}

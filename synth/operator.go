package synth

// modScale converts a full-scale modulator sample into a table index offset:
// a modulator at 1.0 pushes the carrier's phase a quarter cycle forward.
const modScale = tableSize / 4

// operator couples a wavetable, an envelope and a phase accumulator. It
// accepts a per-sample phase modulation input and produces a mono signal.
type operator struct {
	table      *Table
	env        envelope
	sampleRate float64

	pitch    float64
	velocity float64
	volume   float64

	phase float64
	inc   float64

	// pendingReset defers the envelope retrigger to the top of the next
	// render call, so state transitions happen at block boundaries only.
	pendingReset bool
}

func (o *operator) noteOn(pitch, velocity float64) {
	o.pitch = pitch
	o.velocity = velocity
	o.inc = tableSize * pitch / o.sampleRate
	o.pendingReset = true
}

func (o *operator) noteOff() {
	o.env.noteOff()
}

func (o *operator) silent() bool {
	return o.env.silent() && !o.pendingReset
}

func (o *operator) released() bool {
	return o.env.released() && !o.pendingReset
}

// render writes len(out) samples. mod is the phase modulation input; nil
// means the operator is unmodulated. An idle operator emits zeros and keeps
// its phase untouched.
func (o *operator) render(mod, out []float64) {
	if o.pendingReset {
		o.env.noteOn()
		o.pendingReset = false
	}
	if o.env.silent() {
		for i := range out {
			out[i] = 0
		}
		return
	}
	for i := range out {
		idx := o.phase
		if mod != nil {
			idx += mod[i] * modScale
		}
		out[i] = o.table.at(idx) * o.env.advance() * o.velocity * o.volume
		o.phase += o.inc
		if o.phase >= tableSize {
			o.phase -= tableSize
		}
	}
}

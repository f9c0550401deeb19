package synth

import (
	"math"
	"sync/atomic"
)

// maxBlockFrames bounds the number of frames rendered in one go. A driver
// callback asking for more gets its buffer filled in several blocks; all
// scratch buffers are pre-sized to this, so the render path never allocates.
const maxBlockFrames = 2400

const (
	propLevel     = "level"
	propAlgorithm = "algorithm"
	propFeedback  = "feedback"
)

// Engine ties the synthesizer to the outside world: control events go into
// a lock-free queue and are applied at the next block boundary, on the
// render thread, so the voice pool only ever has a single writer. Process is
// the pull callback handed to the audio driver.
type Engine struct {
	*Props
	patch *Patch
	synth *Synth
	mixer *Mixer
	queue *commandBuffer

	level     *atomic.Value
	algorithm *atomic.Value
	feedback  *atomic.Value

	scratch []float64

	drops uint64
}

func NewEngine(patch *Patch) *Engine {
	props := NewProps()
	synth := NewSynth(patch)
	e := &Engine{
		Props:     props,
		patch:     patch,
		synth:     synth,
		mixer:     NewMixer(synth),
		queue:     newCommandBuffer(256),
		level:     props.register(propLevel, setLevel, 0.0),
		algorithm: props.register(propAlgorithm, setInt(0, NumAlgorithms-1), clampAlgorithm(patch.Algorithm)),
		feedback:  props.register(propFeedback, setFloat64(0, 1), patch.Feedback),
		scratch:   make([]float64, 2*maxBlockFrames),
	}
	return e
}

// clampAlgorithm keeps a patch's out of range algorithm id representable as
// a property; the voice routing falls back to all-parallel either way.
func clampAlgorithm(id int) int {
	if id < 0 || id >= NumAlgorithms {
		return NumAlgorithms - 1
	}
	return id
}

func (e *Engine) SampleRate() float64 { return float64(e.patch.SampleRate) }

// Control path. These are safe to call concurrently with the audio stream,
// but only from one goroutine at a time.

func (e *Engine) NoteOn(note, velocity int) {
	if velocity == 0 {
		e.NoteOff(note, 0)
		return
	}
	e.push(command{kind: cmdNoteOn, note: note, value: velocity})
}

func (e *Engine) NoteOff(note, velocity int) {
	e.push(command{kind: cmdNoteOff, note: note, value: velocity})
}

// ControlChange dispatches the controllers the engine reacts to. Mod wheel,
// expression and the rest are accepted and dropped.
func (e *Engine) ControlChange(controller, value int) {
	switch controller {
	case ccSustainPedal:
		e.push(command{kind: cmdSustain, value: value})
	case ccAllNotesOff, ccAllSoundOff:
		e.push(command{kind: cmdAllNotesOff})
		e.push(command{kind: cmdSustain})
	}
}

func (e *Engine) AllNotesOff() {
	e.push(command{kind: cmdAllNotesOff})
}

func (e *Engine) push(cmd command) {
	if !e.queue.push(cmd) {
		atomic.AddUint64(&e.drops, 1)
	}
}

// Drops counts control events discarded because the queue was full.
func (e *Engine) Drops() uint64 { return atomic.LoadUint64(&e.drops) }

// Faults counts render blocks degraded to silence after a recovered panic.
func (e *Engine) Faults() uint64 { return e.mixer.Faults() }

// Steals counts sounding voices cut short for new notes.
func (e *Engine) Steals() uint64 { return e.synth.Steals() }

// MIDI controller numbers the engine cares about.
const (
	ccSustainPedal = 64
	ccAllNotesOff  = 123
	ccAllSoundOff  = 120
)

func (e *Engine) apply(cmd command) {
	switch cmd.kind {
	case cmdNoteOn:
		e.synth.NoteOn(cmd.note, cmd.value)
	case cmdNoteOff:
		e.synth.NoteOff(cmd.note, cmd.value)
	case cmdSustain:
		e.synth.Sustain(cmd.value)
	case cmdAllNotesOff:
		e.synth.AllNotesOff()
	}
}

// Process renders interleaved stereo into out. It is the audio driver's pull
// callback: it always fills the whole buffer, renders in bounded blocks and
// applies queued control events and property changes at block boundaries
// only.
func (e *Engine) Process(out []float32) {
	e.queue.drain(e.apply)
	e.synth.setRouting(e.algorithm.Load().(int), e.feedback.Load().(float64))
	gain := math.Pow(10, e.level.Load().(float64)/20)

	for len(out) > 0 {
		frames := len(out) / 2
		if frames > maxBlockFrames {
			frames = maxBlockFrames
		}
		buf := e.scratch[:2*frames]
		e.mixer.Render(buf)
		for i, s := range buf {
			out[i] = float32(gain * s)
		}
		out = out[2*frames:]
	}
}

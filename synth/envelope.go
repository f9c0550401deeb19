package synth

type envelopeStage int

const (
	stageIdle envelopeStage = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

// envelope is a linear ADSR advanced one sample at a time. Stage durations
// are counted in samples; zero means the stage completes instantaneously.
type envelope struct {
	attack  int
	decay   int
	sustain float64
	release int

	stage          envelopeStage
	samplesInStage int
	level          float64

	// level at the moment the current attack or release began. A retrigger
	// of a sounding envelope ramps from here instead of from zero, which
	// avoids clicks.
	startLevel float64
}

func (e *envelope) noteOn() {
	e.startLevel = e.level
	e.stage = stageAttack
	e.samplesInStage = 0
}

func (e *envelope) noteOff() {
	e.startLevel = e.level
	e.stage = stageRelease
	e.samplesInStage = 0
}

func (e *envelope) silent() bool {
	return e.stage == stageIdle
}

// advance consumes one sample tick and returns the resulting level.
func (e *envelope) advance() float64 {
	switch e.stage {
	case stageIdle:
		e.level = 0
	case stageAttack:
		if e.attack == 0 {
			e.level = 1
		} else {
			e.samplesInStage++
			e.level = e.startLevel + (1-e.startLevel)*float64(e.samplesInStage)/float64(e.attack)
		}
		if e.samplesInStage >= e.attack {
			e.level = 1
			e.stage = stageDecay
			e.samplesInStage = 0
		}
	case stageDecay:
		if e.decay == 0 {
			e.level = e.sustain
		} else {
			e.samplesInStage++
			e.level = 1 + (e.sustain-1)*float64(e.samplesInStage)/float64(e.decay)
		}
		if e.samplesInStage >= e.decay {
			e.level = e.sustain
			e.stage = stageSustain
			e.samplesInStage = 0
		}
	case stageSustain:
		if e.sustain == 0 {
			e.level = 0
			e.stage = stageIdle
		} else {
			e.level = e.sustain
		}
	case stageRelease:
		if e.release == 0 {
			e.level = 0
		} else {
			e.samplesInStage++
			e.level = e.startLevel * (1 - float64(e.samplesInStage)/float64(e.release))
		}
		if e.samplesInStage >= e.release || e.level <= 0 {
			e.level = 0
			e.stage = stageIdle
			e.samplesInStage = 0
		}
	}
	return e.level
}

// released reports whether the envelope got its note off: it is either
// decaying towards zero or already done.
func (e *envelope) released() bool {
	return e.stage == stageRelease || e.stage == stageIdle
}

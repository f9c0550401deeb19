package synth

// sustainThreshold is the CC64 value above which the damper pedal counts as
// held down.
const sustainThreshold = 32

// Synth owns a fixed pool of voices and assigns incoming notes to them.
// Reuse prefers silent voices, then released ones, then steals the least
// recently used voice outright. All methods must be called from a single
// goroutine; the engine drains its command queue on the render thread to
// guarantee that.
type Synth struct {
	patch      *Patch
	voices     []*Voice
	lru        []int // voice indices, front = least recently used
	algorithm  int
	feedback   float64
	generation uint64

	sustainLevel int
	sustained    map[float64]struct{}

	steals uint64
}

func NewSynth(patch *Patch) *Synth {
	s := &Synth{
		patch:     patch,
		algorithm: patch.Algorithm,
		feedback:  patch.Feedback,
		voices:    make([]*Voice, patch.Polyphony),
		lru:       make([]int, patch.Polyphony),
		sustained: make(map[float64]struct{}),
	}
	s.resetVoices()
	return s
}

// resetVoices rebuilds the pool with fresh voice identities and a fresh LRU
// order, and bumps the generation so the mixer rebuilds its pull chain.
func (s *Synth) resetVoices() {
	for i := range s.voices {
		s.voices[i] = NewVoice(s.patch, s.algorithm, s.feedback)
		s.lru[i] = i
	}
	for pitch := range s.sustained {
		delete(s.sustained, pitch)
	}
	s.generation++
}

// Generation identifies the current voice pool instance. It changes on every
// AllNotesOff.
func (s *Synth) Generation() uint64 { return s.generation }

// Voices returns the current pool. Callers must re-fetch it whenever the
// generation changes.
func (s *Synth) Voices() []*Voice { return s.voices }

// Steals counts how many sounding voices were cut short for a new note.
func (s *Synth) Steals() uint64 { return s.steals }

// touch moves the LRU entry at pos to the back and returns the voice index
// stored there.
func (s *Synth) touch(pos int) int {
	idx := s.lru[pos]
	copy(s.lru[pos:], s.lru[pos+1:])
	s.lru[len(s.lru)-1] = idx
	return idx
}

func (s *Synth) NoteOn(note, velocity int) {
	pitch, ok := NoteFreq(note)
	if !ok {
		return
	}
	chosen, released := -1, -1
	for pos, idx := range s.lru {
		v := s.voices[idx]
		if v.Silent() {
			chosen = pos
			break
		}
		if released == -1 && v.Released() {
			released = pos
		}
	}
	if chosen == -1 {
		if released != -1 {
			// A released voice is still decaying; cutting it short is less
			// disruptive than stealing a held note.
			chosen = released
		} else {
			chosen = 0
			s.steals++
		}
	}
	v := s.voices[s.touch(chosen)]
	v.NoteOn(pitch, float64(velocity)/127)
}

func (s *Synth) NoteOff(note, velocity int) {
	pitch, ok := NoteFreq(note)
	if !ok {
		return
	}
	if s.sustainLevel > sustainThreshold {
		s.sustained[pitch] = struct{}{}
		return
	}
	s.releasePitch(pitch)
}

// releasePitch broadcasts the note off to every voice; the per-voice pitch
// gate drops it everywhere except the voice actually holding the note.
func (s *Synth) releasePitch(pitch float64) {
	for _, v := range s.voices {
		v.NoteOff(pitch)
	}
}

// Sustain stores the damper pedal level. Lifting the pedal below the
// threshold releases exactly the pitches whose note offs arrived while it
// was held.
func (s *Synth) Sustain(value int) {
	if s.sustainLevel > sustainThreshold && value <= sustainThreshold {
		for pitch := range s.sustained {
			s.releasePitch(pitch)
			delete(s.sustained, pitch)
		}
	}
	s.sustainLevel = value
}

// AllNotesOff is the panic button: it discards the whole voice pool instead
// of waiting for release tails.
func (s *Synth) AllNotesOff() {
	s.resetVoices()
}

// setRouting applies a new algorithm or feedback value to every voice, at a
// block boundary.
func (s *Synth) setRouting(algorithm int, feedback float64) {
	if algorithm == s.algorithm && feedback == s.feedback {
		return
	}
	s.algorithm = algorithm
	s.feedback = feedback
	for _, v := range s.voices {
		v.SetAlgorithm(algorithm)
		v.SetFeedback(feedback)
	}
}

package synth

import "math"

// noteFreqs maps MIDI note numbers to frequencies in Hz, A4 = 440. A zero
// entry means the note is unmapped and events for it are silently dropped.
var noteFreqs [128]float64

func init() {
	for n := 12; n < 120; n++ {
		noteFreqs[n] = 440 * math.Pow(2, float64(n-69)/12)
	}
}

// NoteFreq looks up the frequency for a MIDI note number.
func NoteFreq(note int) (float64, bool) {
	if note < 0 || note >= len(noteFreqs) || noteFreqs[note] == 0 {
		return 0, false
	}
	return noteFreqs[note], true
}

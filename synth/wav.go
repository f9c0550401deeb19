package synth

import (
	"io"
	"sort"
	"time"

	wav "github.com/youpy/go-wav"
)

// A RenderNote schedules one note for offline rendering.
type RenderNote struct {
	Note     int
	Velocity int
	Start    time.Duration
	Duration time.Duration
}

const int16Max = 1<<15 - 1

// RenderWAV plays notes through a fresh engine without an audio device and
// writes the result as 16-bit stereo WAV. total covers release tails; the
// output is always exactly that long.
func RenderWAV(w io.Writer, patch *Patch, notes []RenderNote, total time.Duration) error {
	e := NewEngine(patch)
	rate := e.SampleRate()

	type midiEvent struct {
		frame    int
		note     int
		velocity int // 0 means note off
	}
	var events []midiEvent
	for _, n := range notes {
		vel := n.Velocity
		if vel == 0 {
			vel = 100
		}
		events = append(events, midiEvent{
			frame:    int(n.Start.Seconds() * rate),
			note:     n.Note,
			velocity: vel,
		})
		events = append(events, midiEvent{
			frame: int((n.Start + n.Duration).Seconds() * rate),
			note:  n.Note,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].frame < events[j].frame })

	totalFrames := int(total.Seconds() * rate)
	writer := wav.NewWriter(w, uint32(totalFrames), 2, uint32(rate), 16)

	buf := make([]float32, 2*sinkBufferFrames)
	samples := make([]wav.Sample, sinkBufferFrames)
	next := 0
	for frame := 0; frame < totalFrames; frame += sinkBufferFrames {
		// The engine applies control events at block boundaries, so note
		// timing is quantized to the block size, same as the live path.
		for next < len(events) && events[next].frame < frame+sinkBufferFrames {
			ev := events[next]
			if ev.velocity > 0 {
				e.NoteOn(ev.note, ev.velocity)
			} else {
				e.NoteOff(ev.note, 0)
			}
			next++
		}
		frames := totalFrames - frame
		if frames > sinkBufferFrames {
			frames = sinkBufferFrames
		}
		block := buf[:2*frames]
		e.Process(block)
		for i := 0; i < frames; i++ {
			samples[i].Values[0] = int(block[2*i] * int16Max)
			samples[i].Values[1] = int(block[2*i+1] * int16Max)
		}
		if err := writer.WriteSamples(samples[:frames]); err != nil {
			return err
		}
	}
	return nil
}

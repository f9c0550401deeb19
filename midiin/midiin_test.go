package midiin

import (
	"reflect"
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

type recorded struct {
	kind string
	a, b int
}

type recorder struct {
	events []recorded
}

func (r *recorder) NoteOn(note, velocity int) {
	r.events = append(r.events, recorded{"on", note, velocity})
}

func (r *recorder) NoteOff(note, velocity int) {
	r.events = append(r.events, recorded{"off", note, velocity})
}

func (r *recorder) ControlChange(controller, value int) {
	r.events = append(r.events, recorded{"cc", controller, value})
}

func TestDispatch(t *testing.T) {
	var rec recorder
	dispatch(midi.NoteOn(0, 60, 100), 1, &rec)
	dispatch(midi.NoteOff(0, 60), 1, &rec)
	dispatch(midi.ControlChange(0, 64, 127), 1, &rec)

	want := []recorded{
		{"on", 60, 100},
		{"off", 60, 0},
		{"cc", 64, 127},
	}
	if !reflect.DeepEqual(want, rec.events) {
		t.Errorf("expected %v, got %v", want, rec.events)
	}
}

func TestDispatchVelocityZeroIsNoteOff(t *testing.T) {
	var rec recorder
	dispatch(midi.NoteOn(0, 60, 0), 1, &rec)

	want := []recorded{{"off", 60, 0}}
	if !reflect.DeepEqual(want, rec.events) {
		t.Errorf("expected %v, got %v", want, rec.events)
	}
}

func TestDispatchChannelFilter(t *testing.T) {
	var rec recorder
	dispatch(midi.NoteOn(1, 60, 100), 1, &rec) // channel 2, listener on 1
	if len(rec.events) != 0 {
		t.Errorf("expected events on other channels to be dropped, got %v", rec.events)
	}

	dispatch(midi.NoteOn(1, 60, 100), 0, &rec) // 0 accepts all channels
	if want, got := 1, len(rec.events); want != got {
		t.Errorf("expected %v event in omni mode, got %v", want, got)
	}
}

func TestDispatchIgnoresUnrelatedMessages(t *testing.T) {
	var rec recorder
	dispatch(midi.Pitchbend(0, 1024), 1, &rec)
	dispatch(midi.AfterTouch(0, 64), 1, &rec)
	if len(rec.events) != 0 {
		t.Errorf("expected unrelated messages to be ignored, got %v", rec.events)
	}
}

// Package midiin connects a hardware (or virtual) MIDI input port to the
// synthesizer's control surface.
package midiin

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters the driver
)

// Handler receives the decoded events the synthesizer understands. Methods
// are called from the driver's listener goroutine, one event at a time.
type Handler interface {
	NoteOn(note, velocity int)
	NoteOff(note, velocity int)
	ControlChange(controller, value int)
}

// Ports lists the names of the available MIDI input ports.
func Ports() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Listen opens the named input port and forwards its events to h. channel is
// 1-based; 0 accepts every channel. The returned function stops listening.
func Listen(portName string, channel int, h Handler) (func(), error) {
	in, err := midi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("midi-in port %q not connected (have: %s)", portName, strings.Join(Ports(), ", "))
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		dispatch(msg, channel, h)
	})
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", portName, err)
	}
	return func() {
		stop()
		midi.CloseDriver()
	}, nil
}

// dispatch decodes one message. Note ons with velocity zero arrive as note
// ends. Mod wheel, expression and pitch bend are accepted but have no effect
// at this layer, matching the control changes the engine drops itself.
func dispatch(msg midi.Message, channel int, h Handler) {
	var ch, key, vel, cc, val uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if !onChannel(ch, channel) {
			return
		}
		h.NoteOn(int(key), int(vel))
	case msg.GetNoteEnd(&ch, &key):
		if !onChannel(ch, channel) {
			return
		}
		h.NoteOff(int(key), 0)
	case msg.GetControlChange(&ch, &cc, &val):
		if !onChannel(ch, channel) {
			return
		}
		h.ControlChange(int(cc), int(val))
	}
}

func onChannel(ch uint8, want int) bool {
	return want == 0 || int(ch) == want-1
}

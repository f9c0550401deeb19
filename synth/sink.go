package synth

import (
	"github.com/gordonklaus/portaudio"
)

// sinkBufferFrames is the preferred callback size requested from the device.
// The engine copes with whatever size the driver actually delivers, up to
// maxBlockFrames per internal block.
const sinkBufferFrames = 512

// Sink drives an engine from the default audio output device.
type Sink struct {
	stream *portaudio.Stream
}

func NewSink(e *Engine) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, e.SampleRate(), sinkBufferFrames, e.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return &Sink{stream: stream}, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	return portaudio.Terminate()
}

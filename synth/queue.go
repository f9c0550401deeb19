package synth

import "sync/atomic"

type commandKind int

const (
	cmdNoteOn commandKind = iota
	cmdNoteOff
	cmdSustain
	cmdAllNotesOff
)

type command struct {
	kind  commandKind
	note  int
	value int // velocity for notes, level for sustain
}

// commandBuffer is a lock-free spsc queue handing control events from the
// MIDI thread to the render thread. The producer never blocks: pushing into
// a full buffer drops the command.
type commandBuffer struct {
	commands    []command
	read, write *uint32
}

func newCommandBuffer(size int) *commandBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("command buffer size must be a power of 2")
	}
	return &commandBuffer{
		commands: make([]command, size),
		read:     new(uint32),
		write:    new(uint32),
	}
}

func (b *commandBuffer) push(cmd command) bool {
	write := atomic.LoadUint32(b.write)
	if write-atomic.LoadUint32(b.read) == uint32(len(b.commands)) {
		return false
	}
	b.commands[write%uint32(len(b.commands))] = cmd
	atomic.StoreUint32(b.write, write+1)
	return true
}

// drain consumes every queued command. Called once per render call, at a
// block boundary, by the sole consumer.
func (b *commandBuffer) drain(f func(command)) {
	read := atomic.LoadUint32(b.read)
	write := atomic.LoadUint32(b.write)
	for read != write {
		f(b.commands[read%uint32(len(b.commands))])
		read++
	}
	atomic.StoreUint32(b.read, read)
}

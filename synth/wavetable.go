package synth

import (
	"fmt"
	"math"
)

// tableSize is the length of a single waveform cycle. Operators index into
// the table with a fractional phase and wrap modulo this length.
const tableSize = 2048

// A Table holds one immutable waveform cycle, normalized to [-1, 1]. Tables
// are built once at startup and shared read-only across all operators.
type Table struct {
	name    string
	samples [tableSize]float64
}

func (t *Table) Name() string { return t.name }

// at reads the nearest sample for a fractional index, wrapping modulo the
// table length. Negative indices (from deep phase modulation) wrap too.
func (t *Table) at(idx float64) float64 {
	i := int(idx) % tableSize
	if i < 0 {
		i += tableSize
	}
	return t.samples[i]
}

var (
	sineTable   = makeTable("sine", sineAt)
	sine12Table = makeTable("sine12", sine12At)
	sawTable    = makeTable("saw", sawAt)
	pulseTable  = makeTable("pulse", pulseAt)
)

func makeTable(name string, f func(i int) float64) *Table {
	t := &Table{name: name}
	for i := range t.samples {
		t.samples[i] = f(i)
	}
	return t
}

func sineAt(i int) float64 {
	return math.Sin(float64(i) / tableSize * 2 * math.Pi)
}

// sine12At is a sine modulated by its first harmonic at half amplitude,
// in phase with the plain sine.
func sine12At(i int) float64 {
	x := float64(i) / tableSize * 2 * math.Pi
	return 0.5*math.Sin(x) + 0.5*math.Sin(2*x)
}

// sawAt rises from 0 to 1 over the first half cycle, drops to -1, and rises
// back to 0, keeping the cycle in phase with sineAt.
func sawAt(i int) float64 {
	if i < tableSize/2 {
		return float64(i) / tableSize * 2
	}
	return -1 + float64(i-tableSize/2)/tableSize*2
}

func pulseAt(i int) float64 {
	if i < tableSize/2 {
		return 1
	}
	return -1
}

func tableByName(name string) (*Table, error) {
	switch name {
	case "sine", "":
		return sineTable, nil
	case "sine12":
		return sine12Table, nil
	case "saw":
		return sawTable, nil
	case "pulse":
		return pulseTable, nil
	default:
		return nil, fmt.Errorf("not a valid waveform type: %v", name)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"phasor/synth"
)

type replCommand struct {
	name  string
	usage string
	run   func(*synth.Engine, []string) error
	arity int // -n means len(args) must be >= n
}

var replCommands []replCommand

// Assigned in init to break the initialization cycle between replCommands
// and helpCommand, which ranges over the table it is part of.
func init() {
	replCommands = []replCommand{
		{"set", "set <prop> <value>", setCommand, 2},
		{"get", "get <prop>", getCommand, 1},
		{"props", "props", propsCommand, 0},
		{"note", "note <midinote> [velocity]", noteCommand, -1},
		{"off", "off <midinote>", offCommand, 1},
		{"panic", "panic", panicCommand, 0},
		{"stats", "stats", statsCommand, 0},
		{"help", "help", helpCommand, 0},
	}
}

func repl(engine *synth.Engine) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := eval(engine, fields[0], fields[1:]); err != nil {
			fmt.Println(err)
		}
	}
}

func eval(engine *synth.Engine, name string, args []string) error {
	for _, cmd := range replCommands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			if len(args) < -cmd.arity {
				return fmt.Errorf("usage: %s", cmd.usage)
			}
		} else if len(args) != cmd.arity {
			return fmt.Errorf("usage: %s", cmd.usage)
		}
		if err := cmd.run(engine, args); err != nil {
			return fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s (try 'help')", name)
}

func setCommand(e *synth.Engine, args []string) error {
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.New("value must be a number")
	}
	return e.Set(args[0], v)
}

func getCommand(e *synth.Engine, args []string) error {
	v, err := e.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func propsCommand(e *synth.Engine, args []string) error {
	for _, key := range e.Keys() {
		v, err := e.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %v\n", key, v)
	}
	return nil
}

func noteCommand(e *synth.Engine, args []string) error {
	note, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New("note must be a MIDI note number")
	}
	velocity := 100
	if len(args) > 1 {
		if velocity, err = strconv.Atoi(args[1]); err != nil {
			return errors.New("velocity must be a number")
		}
	}
	e.NoteOn(note, velocity)
	return nil
}

func offCommand(e *synth.Engine, args []string) error {
	note, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New("note must be a MIDI note number")
	}
	e.NoteOff(note, 0)
	return nil
}

func panicCommand(e *synth.Engine, args []string) error {
	e.AllNotesOff()
	return nil
}

func statsCommand(e *synth.Engine, args []string) error {
	fmt.Printf("steals: %v  drops: %v  faults: %v\n", e.Steals(), e.Drops(), e.Faults())
	return nil
}

func helpCommand(e *synth.Engine, args []string) error {
	for _, cmd := range replCommands {
		fmt.Println(cmd.usage)
	}
	fmt.Println("quit")
	return nil
}

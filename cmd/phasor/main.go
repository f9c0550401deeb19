package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"phasor/midiin"
	"phasor/synth"
)

var (
	patchFile  string
	presetName string
	portName   string
	channel    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "phasor",
	Short: "A polyphonic 4-operator FM synthesizer played over MIDI",
	Long: `phasor is a real-time polyphonic phase-modulation synthesizer.
It listens on a MIDI input port, renders audio to the default output
device, and can also render note sequences to WAV files offline.

Examples:
  phasor ports
  phasor play --port "IAC fmsynth" --preset glass-bells
  phasor play --patch mypatch.toml
  phasor render -o chord.wav --notes 48,60,64,67 --preset brass-pad`,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, renderCmd} {
		cmd.Flags().StringVar(&patchFile, "patch", "", "load a TOML patch file")
		cmd.Flags().StringVar(&presetName, "preset", "init", "use a built-in preset")
	}
	playCmd.Flags().StringVar(&portName, "port", "", "MIDI input port name (see 'phasor ports')")
	playCmd.Flags().IntVar(&channel, "channel", 1, "MIDI channel to listen on, 0 for all")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.wav", "output WAV file")
	renderCmd.Flags().IntSliceVar(&renderNotes, "notes", []int{60}, "MIDI notes to play")
	renderCmd.Flags().IntVar(&renderVelocity, "velocity", 100, "note velocity")
	renderCmd.Flags().Float64Var(&renderDuration, "duration", 1, "note length in seconds")
	renderCmd.Flags().Float64Var(&renderGap, "gap", 0, "seconds between note starts; 0 plays a chord")
	renderCmd.Flags().Float64Var(&renderTail, "tail", 1, "seconds of release tail after the last note")

	rootCmd.AddCommand(playCmd, renderCmd, portsCmd, presetsCmd)
}

func loadPatch() (*synth.Patch, error) {
	if patchFile != "" {
		return synth.LoadPatch(patchFile)
	}
	return synth.Preset(presetName)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play live from a MIDI input port",
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := loadPatch()
		if err != nil {
			return err
		}
		engine := synth.NewEngine(patch)

		sink, err := synth.NewSink(engine)
		if err != nil {
			return err
		}
		if err := sink.Start(); err != nil {
			return err
		}
		defer sink.Stop()

		if portName != "" {
			stop, err := midiin.Listen(portName, channel, engine)
			if err != nil {
				return err
			}
			defer stop()
			log.Printf("listening on %q, channel %v", portName, channel)
		} else {
			log.Printf("no --port given; MIDI input disabled, use the 'note' command")
		}

		fmt.Printf("patch %q, %v voices at %v Hz\n", patch.Name, patch.Polyphony, patch.SampleRate)
		return repl(engine)
	},
}

var (
	renderOut      string
	renderNotes    []int
	renderVelocity int
	renderDuration float64
	renderGap      float64
	renderTail     float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a note sequence to a WAV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := loadPatch()
		if err != nil {
			return err
		}
		var notes []synth.RenderNote
		var end time.Duration
		for i, note := range renderNotes {
			start := time.Duration(float64(i) * renderGap * float64(time.Second))
			duration := time.Duration(renderDuration * float64(time.Second))
			notes = append(notes, synth.RenderNote{
				Note:     note,
				Velocity: renderVelocity,
				Start:    start,
				Duration: duration,
			})
			if start+duration > end {
				end = start + duration
			}
		}
		total := end + time.Duration(renderTail*float64(time.Second))

		f, err := os.Create(renderOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := synth.RenderWAV(f, patch, notes, total); err != nil {
			return err
		}
		fmt.Printf("wrote %v (%v)\n", renderOut, total)
		return nil
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI input ports",
	Run: func(cmd *cobra.Command, args []string) {
		ports := midiin.Ports()
		if len(ports) == 0 {
			fmt.Println("no MIDI input ports found")
			return
		}
		fmt.Println(strings.Join(ports, "\n"))
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in patches",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strings.Join(synth.PresetNames(), "\n"))
	},
}

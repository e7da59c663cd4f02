package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	amplitude := flagSet.Float64("amplitude", 1, "peak amplitude of the tone, between 0 and 1")
	rate := flagSet.Int("rate", 48000, "sample rate in hertz")
	bits := flagSet.Int("bits", 16, "bits per sample of the output file")
	channels := flagSet.Int("channels", 1, "number of channels to write the tone to")
	float := flagSet.Bool("float", false, "store IEEE float samples instead of PCM")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	cfg := wavio.Config{
		SampleRate:  *rate,
		NumChans:    *channels,
		BitDepth:    *bits,
		AudioFormat: wavio.FormatPCM,
	}
	if *float {
		cfg.AudioFormat = wavio.FormatIEEEFloat
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	w, err := wavio.Create(*output, cfg)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}

	numSamples := int(float64(*rate) * *length)

	tone := make([]float32, numSamples)
	for i := range tone {
		fv := *amplitude * math.Sin(float64(i)/float64(*rate)**frequency*2*math.Pi)

		tone[i] = float32(fv)
	}

	// The same tone goes to every channel.
	buffers := make([][]float32, cfg.NumChans)
	for c := range buffers {
		buffers[c] = tone
	}

	if err := w.WriteFloat32(buffers...); err != nil {
		return err
	}

	return w.Close()
}

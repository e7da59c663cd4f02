// This tool rewrites a wav file with a different sample layout, going
// through float32 so any supported bit depth converts to any other.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavio"
)

// bufferFrames is the number of frames converted per write.
const bufferFrames = 65536

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println("You must set the -path flag")
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavconvert", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert")
	output := flagSet.String("output", "", "filename to write to, defaults to the source name with the new layout appended")
	bits := flagSet.Int("bits", 0, "bits per sample of the output file, defaults to the source depth")
	format := flagSet.String("format", "", `sample format to store, "pcm" or "float", defaults to the source format`)

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	r, err := wavio.Open(*path)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg := r.Config()

	switch *format {
	case "":
	case "pcm":
		cfg.AudioFormat = wavio.FormatPCM
	case "float":
		cfg.AudioFormat = wavio.FormatIEEEFloat
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	if *bits != 0 {
		cfg.BitDepth = *bits
	} else if cfg.AudioFormat == wavio.FormatIEEEFloat {
		// float storage only comes in one width
		cfg.BitDepth = 32
	}

	outPath := *output
	if outPath == "" {
		base := (*path)[:len(*path)-len(filepath.Ext(*path))]
		outPath = fmt.Sprintf("%s.%dbit.wav", base, cfg.BitDepth)
	}

	w, err := wavio.Create(outPath, cfg)
	if err != nil {
		return err
	}

	for {
		buf, err := r.ReadFloat32Buffer(bufferFrames)
		if err != nil {
			return err
		}

		if len(buf.Data) == 0 {
			break
		}

		if err := w.WriteFloat32Buffer(buf); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s converted to %s: %s\n", *path, outPath, w.Config())

	return nil
}

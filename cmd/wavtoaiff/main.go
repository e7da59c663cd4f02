// This tool converts a wav file into an aiff file and stores it in the
// same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavio"
	"github.com/go-audio/aiff"
)

// bufferFrames is the number of frames converted per encoder write.
const bufferFrames = 65536

func main() {
	err := run(os.Args[1:])
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

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	sourcePath := *path
	if strings.HasPrefix(sourcePath, "~/") {
		usr, err := user.Current()
		if err != nil {
			return fmt.Errorf("failed to get the user home directory: %w", err)
		}

		sourcePath = strings.Replace(sourcePath, "~", usr.HomeDir, 1)
	}

	r, err := wavio.Open(sourcePath)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg := r.Config()

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, cfg.SampleRate, cfg.BitDepth, cfg.NumChans)

	for {
		buf, err := r.ReadIntBuffer(bufferFrames)
		if err != nil {
			return err
		}

		if len(buf.Data) == 0 {
			break
		}

		if err := encoder.Write(buf); err != nil {
			return err
		}
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	fmt.Printf("Wav file converted to %s\n", outPath)

	return nil
}

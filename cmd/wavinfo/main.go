// This tool prints the sample layout of the passed wav files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavio"
)

const missingPathMessage = "You must pass the path of at least one file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	for _, path := range args {
		if err := describe(path, out); err != nil {
			return err
		}
	}

	return nil
}

func describe(path string, out io.Writer) error {
	r, err := wavio.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg := r.Config()

	fmt.Fprintf(out, "%s: %s\n", path, r)
	fmt.Fprintf(out, "\tdata: %d bytes in frames of %d bytes\n", cfg.DataChunkSize, cfg.BlockAlign)

	return nil
}

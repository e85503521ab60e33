package main

import (
	"flag"
	"fmt"
	"os"

	"dicom-deidentifier/internal/cli"
)

func main() {
	maps := flag.String("maps", "./lookup_table", "Directory containing the lookup tables")
	input := flag.String("input", "./dicom_original", "Input root with one subfolder per subject")
	output := flag.String("output", "./output", "Output root for the result trees")

	flag.Usage = func() {
		cli.PrintUsage()
	}

	flag.Parse()

	opts := cli.Options{
		MapDir:     *maps,
		InputRoot:  *input,
		OutputRoot: *output,
	}

	if err := cli.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

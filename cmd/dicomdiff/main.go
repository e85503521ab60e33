package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dicom-deidentifier/internal/compare"
	dcm "dicom-deidentifier/internal/dicom"
)

func main() {
	file1 := flag.String("file1", "", "Path to the first DICOM file")
	file2 := flag.String("file2", "", "Path to the second DICOM file")
	output := flag.String("o", "dicom_tag_differences.csv", "Output CSV file for the differences")
	flag.Parse()

	if *file1 == "" || *file2 == "" {
		fmt.Fprintln(os.Stderr, "Usage: dicomdiff -file1 <path> -file2 <path> [-o <csv>]")
		os.Exit(2)
	}

	if err := run(*file1, *file2, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path1, path2, outputPath string) error {
	ds1, err := dcm.ReadDicom(path1)
	if err != nil {
		return fmt.Errorf("%s: %w", path1, err)
	}
	ds2, err := dcm.ReadDicom(path2)
	if err != nil {
		return fmt.Errorf("%s: %w", path2, err)
	}

	rows := compare.Diff(ds1, ds2)
	if len(rows) == 0 {
		fmt.Println("All tags and values match between the two DICOM files.")
		return nil
	}

	for _, row := range rows {
		fmt.Printf("%s %s\n", row.Tag, row.Name)
		fmt.Printf("  file1: %s\n", row.File1)
		fmt.Printf("  file2: %s\n", row.File2)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", outputPath, err)
	}
	defer file.Close()
	if err := compare.WriteCSV(file, rows); err != nil {
		return err
	}

	saved := outputPath
	if abs, err := filepath.Abs(outputPath); err == nil {
		saved = abs
	}
	fmt.Printf("\n%d differing tag(s) saved to: %s\n", len(rows), saved)
	return nil
}

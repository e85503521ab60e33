package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"dicom-deidentifier/internal/deid"
	"dicom-deidentifier/internal/lookup"
	"dicom-deidentifier/internal/report"
)

// Options holds CLI configuration options
type Options struct {
	MapDir     string
	InputRoot  string
	OutputRoot string
}

// Artifacts created under the output root.
const (
	ProcessedDirName   = "dicom_processed"
	UnprocessedDirName = "dicom_unprocessed"
	LogFileName        = "unprocessed.log"
	ReportFileName     = "run_report.json"
)

// Run executes one batch de-identification run
func Run(opts Options) error {
	// Validate input root
	if opts.InputRoot == "" {
		return fmt.Errorf("input root is required")
	}
	info, err := os.Stat(opts.InputRoot)
	if err != nil {
		return fmt.Errorf("input root does not exist: %s", opts.InputRoot)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", opts.InputRoot)
	}

	// Lookup tables are trusted configuration: any problem is fatal
	// before a single record is touched.
	tables, err := lookup.Load(osfs.New(opts.MapDir))
	if err != nil {
		return fmt.Errorf("could not load lookup tables: %w", err)
	}

	printHeader(opts, tables)

	// Both result trees exist even when a run routes nothing into them.
	outFS := osfs.New(opts.OutputRoot)
	for _, name := range []string{ProcessedDirName, UnprocessedDirName} {
		if err := outFS.MkdirAll(name, 0755); err != nil {
			return fmt.Errorf("could not create output directory %s: %w", name, err)
		}
	}
	processedFS, err := outFS.Chroot(ProcessedDirName)
	if err != nil {
		return fmt.Errorf("could not enter %s: %w", ProcessedDirName, err)
	}
	unprocessedFS, err := outFS.Chroot(UnprocessedDirName)
	if err != nil {
		return fmt.Errorf("could not enter %s: %w", UnprocessedDirName, err)
	}

	log, err := report.NewFileLog(outFS, LogFileName)
	if err != nil {
		return fmt.Errorf("could not create log: %w", err)
	}
	defer log.Close()

	pipe := &deid.Pipeline{
		In:          osfs.New(opts.InputRoot),
		Processed:   processedFS,
		Unprocessed: unprocessedFS,
		Tables:      tables,
		Log:         log,
	}

	started := time.Now()
	results, err := pipe.Run()
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	runReport := report.NewRunReport(started, time.Now(), results)
	if err := runReport.Write(outFS, ReportFileName); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	printSummary(results, opts, log)
	return nil
}

// PrintUsage prints CLI usage information
func PrintUsage() {
	fmt.Println(`DICOM De-identifier - Batch Command Line Tool

USAGE:
  deidentifier [flags]

Replaces PatientID and AccessionNumber from lookup tables and shifts a
fixed set of date tags by a per-patient day offset. Records that cannot
be fully handled are copied unchanged into a quarantine tree.

FLAGS:
  -maps <path>      Directory with Image_map.csv and Personal_map.csv
                    (default: ./lookup_table)
  -input <path>     Input root; every record must live under a subject
                    subfolder (default: ./dicom_original)
  -output <path>    Output root for the result trees (default: ./output)
  -h, -help         Show this help message

LOOKUP TABLES:
  Image_map.csv     Columns PatientID, AccessionNumber, image_occurence_id.
                    Replacement accession number per imaging event.
  Personal_map.csv  Columns PatientID, person_id, Days_Shifted.
                    Replacement patient ID and day offset per patient.

OUTPUT:
  {output}/dicom_processed/     De-identified records, mirrored layout
  {output}/dicom_unprocessed/   Verbatim copies of records left alone
  {output}/unprocessed.log      One line per unprocessed record
  {output}/run_report.json      Per-subfolder counts for the run

A record is left unprocessed when its identifiers have no lookup row,
when a date tag carries an unexpected VR or a malformed value, or when
the file cannot be parsed as DICOM. Fix the lookup tables and re-run;
the output trees are rebuilt on every run.`)
}

// printHeader prints the run header with configuration
func printHeader(opts Options, tables lookup.Tables) {
	fmt.Println("DICOM De-identifier")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Lookup:    %s (%d image rows, %d personal rows)\n",
		opts.MapDir, len(tables.Images), len(tables.Persons))
	fmt.Printf("Input:     %s\n", opts.InputRoot)
	fmt.Printf("Output:    %s\n", opts.OutputRoot)
	if tables.ImageDuplicates > 0 {
		fmt.Printf("Warning:   %d duplicate row(s) in %s, last occurrence kept\n",
			tables.ImageDuplicates, lookup.ImageMapFile)
	}
	if tables.PersonalDuplicates > 0 {
		fmt.Printf("Warning:   %d duplicate row(s) in %s, last occurrence kept\n",
			tables.PersonalDuplicates, lookup.PersonalMapFile)
	}
	fmt.Println()
}

// printSummary prints the end-of-run summary
func printSummary(results []report.SubfolderResult, opts Options, log *report.FileLog) {
	processed, unprocessed, total := 0, 0, 0
	for _, r := range results {
		processed += r.Processed
		unprocessed += r.Unprocessed
		total += r.Total
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Complete! %d processed, %d unprocessed, %d total\n", processed, unprocessed, total)
	fmt.Printf("Subfolders: %d\n", len(results))
	fmt.Printf("Output:    %s\n", filepath.Join(opts.OutputRoot, ProcessedDirName))
	fmt.Printf("Report:    %s\n", filepath.Join(opts.OutputRoot, ReportFileName))
	fmt.Printf("  %s\n", log.Summary())
	fmt.Println()
	fmt.Println("De-identification of PatientID, AccessionNumber, and selected date tags has been completed.")
}

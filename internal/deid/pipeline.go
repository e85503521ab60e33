package deid

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	dcm "dicom-deidentifier/internal/dicom"
	"dicom-deidentifier/internal/lookup"
	"dicom-deidentifier/internal/report"
)

// DefaultExtension selects which files are treated as DICOM records.
const DefaultExtension = ".dcm"

// Pipeline walks the input tree one subfolder at a time and routes every
// record into exactly one of two mirrored output trees: processed for
// de-identified rewrites, unprocessed for verbatim copies of records the
// run could not handle.
type Pipeline struct {
	In           billy.Filesystem // input root, one subfolder per subject
	Processed    billy.Filesystem // root of the de-identified tree
	Unprocessed  billy.Filesystem // root of the verbatim-copy tree
	Tables       lookup.Tables
	Extension    string          // defaults to DefaultExtension
	OutputWriter func(string)    // console output hook
	Log          *report.FileLog // optional per-record diagnostics
}

// Run processes every subfolder under the input root in sorted order and
// returns one result per subfolder.
func (p *Pipeline) Run() ([]report.SubfolderResult, error) {
	output := p.OutputWriter
	if output == nil {
		output = func(s string) { fmt.Print(s) }
	}

	subfolders, err := dcm.Subfolders(p.In)
	if err != nil {
		return nil, fmt.Errorf("could not list input root: %w", err)
	}

	results := make([]report.SubfolderResult, 0, len(subfolders))
	for i, name := range subfolders {
		output(fmt.Sprintf("[%d] Processing subfolder: %s\n", i+1, name))

		result, err := p.processSubfolder(name, output)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		output(fmt.Sprintf("Processed: %d | Unprocessed: %d | Total: %d\n\n",
			result.Processed, result.Unprocessed, result.Total))
	}
	return results, nil
}

func (p *Pipeline) processSubfolder(name string, output func(string)) (report.SubfolderResult, error) {
	ext := p.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	files, err := dcm.FindFiles(p.In, name, ext)
	if err != nil {
		return report.SubfolderResult{}, fmt.Errorf("could not walk subfolder %s: %w", name, err)
	}

	result := report.SubfolderResult{Name: name}
	for _, path := range files {
		result.Total++
		if p.processFile(path, output) {
			result.Processed++
		} else {
			result.Unprocessed++
		}
	}
	return result, nil
}

// processFile routes one record. True means the de-identified rewrite
// landed in the processed tree; false means the record stayed original.
func (p *Pipeline) processFile(path string, output func(string)) bool {
	data, err := util.ReadFile(p.In, path)
	if err != nil {
		p.diagnose(output, path, fmt.Sprintf("Could not read file: %v", err))
		return false
	}

	ds, err := dcm.ReadBytes(data)
	if err != nil {
		p.diagnose(output, path, "Unparseable DICOM record")
		p.copyOriginal(output, path, data)
		return false
	}

	disposition := Process(ds, p.Tables)
	if !disposition.Processed {
		p.diagnose(output, path, disposition.Detail)
		p.copyOriginal(output, path, data)
		return false
	}

	out, err := ds.Bytes()
	if err != nil {
		p.diagnose(output, path, fmt.Sprintf("Could not re-encode record: %v", err))
		p.copyOriginal(output, path, data)
		return false
	}
	if err := writeTree(p.Processed, path, out); err != nil {
		p.diagnose(output, path, fmt.Sprintf("Could not write output: %v", err))
		return false
	}
	return true
}

// copyOriginal places the record's original bytes in the unprocessed
// tree. Only the read bytes are ever copied, never a partially modified
// serialization.
func (p *Pipeline) copyOriginal(output func(string), path string, data []byte) {
	if err := writeTree(p.Unprocessed, path, data); err != nil {
		p.diagnose(output, path, fmt.Sprintf("Could not copy original: %v", err))
	}
}

func (p *Pipeline) diagnose(output func(string), path, detail string) {
	output(fmt.Sprintf("%s: %s\n", detail, path))
	if p.Log != nil {
		p.Log.Log(path, detail)
	}
}

// writeTree materializes one file under fsys, creating parent
// directories so the output mirrors the input layout.
func writeTree(fsys billy.Filesystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create output directory: %w", err)
		}
	}
	return util.WriteFile(fsys, path, data, 0644)
}

package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// SubfolderResult counts how the records of one input subfolder were
// routed.
type SubfolderResult struct {
	Name        string `json:"name"`
	Processed   int    `json:"processed"`
	Unprocessed int    `json:"unprocessed"`
	Total       int    `json:"total"`
}

// RunReport is the JSON document written at the end of a run.
type RunReport struct {
	Started    string            `json:"started"`
	Finished   string            `json:"finished"`
	Subfolders []SubfolderResult `json:"subfolders"`
	Summary    struct {
		Processed   int `json:"processed"`
		Unprocessed int `json:"unprocessed"`
		Total       int `json:"total"`
	} `json:"summary"`
}

// NewRunReport aggregates per-subfolder results into a run report.
func NewRunReport(started, finished time.Time, subfolders []SubfolderResult) RunReport {
	if subfolders == nil {
		subfolders = []SubfolderResult{}
	}

	r := RunReport{
		Started:    started.Format(time.RFC3339),
		Finished:   finished.Format(time.RFC3339),
		Subfolders: subfolders,
	}
	for _, s := range subfolders {
		r.Summary.Processed += s.Processed
		r.Summary.Unprocessed += s.Unprocessed
		r.Summary.Total += s.Total
	}
	return r
}

// Write saves the report as indented JSON.
func (r RunReport) Write(fsys billy.Filesystem, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}
	if err := util.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("could not save report: %w", err)
	}
	return nil
}

// Package lookup loads the CSV tables that drive de-identification:
// replacement identifiers and per-patient day offsets.
package lookup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Table file names expected inside the lookup directory.
const (
	ImageMapFile    = "Image_map.csv"
	PersonalMapFile = "Personal_map.csv"
)

// Column headers as they appear in the table files (including the
// historical "occurence" spelling).
const (
	colPatientID         = "PatientID"
	colAccessionNumber   = "AccessionNumber"
	colImageOccurrenceID = "image_occurence_id"
	colPersonID          = "person_id"
	colDaysShifted       = "Days_Shifted"
)

// ImageKey identifies one imaging event: the original PatientID plus the
// original AccessionNumber.
type ImageKey struct {
	PatientID       string
	AccessionNumber string
}

// ImageMap maps an imaging event to the replacement accession number.
type ImageMap map[ImageKey]string

// PersonalEntry holds the per-patient replacement identifier and the day
// offset applied to every date in that patient's records.
type PersonalEntry struct {
	PersonID    string
	DaysShifted int
}

// PersonalMap maps an original PatientID to its replacement entry.
type PersonalMap map[string]PersonalEntry

// Tables bundles both lookup tables for a run. Duplicate counts record
// how many rows were overwritten by a later row with the same key.
type Tables struct {
	Images             ImageMap
	Persons            PersonalMap
	ImageDuplicates    int
	PersonalDuplicates int
}

// Load reads both lookup tables from the root of the given filesystem.
func Load(fsys billy.Filesystem) (Tables, error) {
	imageFile, err := fsys.Open(ImageMapFile)
	if err != nil {
		return Tables{}, fmt.Errorf("could not open %s: %w", ImageMapFile, err)
	}
	defer imageFile.Close()

	images, imageDups, err := ReadImageMap(imageFile)
	if err != nil {
		return Tables{}, fmt.Errorf("%s: %w", ImageMapFile, err)
	}

	personalFile, err := fsys.Open(PersonalMapFile)
	if err != nil {
		return Tables{}, fmt.Errorf("could not open %s: %w", PersonalMapFile, err)
	}
	defer personalFile.Close()

	persons, personalDups, err := ReadPersonalMap(personalFile)
	if err != nil {
		return Tables{}, fmt.Errorf("%s: %w", PersonalMapFile, err)
	}

	return Tables{
		Images:             images,
		Persons:            persons,
		ImageDuplicates:    imageDups,
		PersonalDuplicates: personalDups,
	}, nil
}

// ReadImageMap parses the image map CSV. Rows sharing a key overwrite
// earlier ones; the second return value counts such overwrites.
func ReadImageMap(r io.Reader) (ImageMap, int, error) {
	cr := csv.NewReader(r)
	cols, err := readHeader(cr, colPatientID, colAccessionNumber, colImageOccurrenceID)
	if err != nil {
		return nil, 0, err
	}

	images := make(ImageMap)
	duplicates := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("could not read row: %w", err)
		}
		key := ImageKey{
			PatientID:       strings.TrimSpace(row[cols[colPatientID]]),
			AccessionNumber: strings.TrimSpace(row[cols[colAccessionNumber]]),
		}
		if _, seen := images[key]; seen {
			duplicates++
		}
		images[key] = strings.TrimSpace(row[cols[colImageOccurrenceID]])
	}
	return images, duplicates, nil
}

// ReadPersonalMap parses the personal map CSV. A Days_Shifted cell that
// is not an integer is fatal: silently skipping it would leave that
// patient's dates unshifted.
func ReadPersonalMap(r io.Reader) (PersonalMap, int, error) {
	cr := csv.NewReader(r)
	cols, err := readHeader(cr, colPatientID, colPersonID, colDaysShifted)
	if err != nil {
		return nil, 0, err
	}

	persons := make(PersonalMap)
	duplicates := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("could not read row: %w", err)
		}
		patientID := strings.TrimSpace(row[cols[colPatientID]])
		rawDays := strings.TrimSpace(row[cols[colDaysShifted]])
		days, err := strconv.Atoi(rawDays)
		if err != nil {
			return nil, 0, fmt.Errorf("could not parse %s %q for %s %q: %w", colDaysShifted, rawDays, colPatientID, patientID, err)
		}
		if _, seen := persons[patientID]; seen {
			duplicates++
		}
		persons[patientID] = PersonalEntry{
			PersonID:    strings.TrimSpace(row[cols[colPersonID]]),
			DaysShifted: days,
		}
	}
	return persons, duplicates, nil
}

// readHeader consumes the header row and locates each required column.
func readHeader(cr *csv.Reader, required ...string) (map[string]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("lookup table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, cell := range header {
		positions[strings.TrimSpace(cell)] = i
	}

	cols := make(map[string]int, len(required))
	for _, name := range required {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = pos
	}
	return cols, nil
}

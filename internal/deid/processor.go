// Package deid rewrites DICOM records so they can leave the clinical
// environment: identifiers are replaced from lookup tables and every
// date in the shift-tag table is moved by a per-patient day offset.
package deid

import (
	"fmt"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"

	"dicom-deidentifier/internal/dateshift"
	dcm "dicom-deidentifier/internal/dicom"
	"dicom-deidentifier/internal/lookup"
)

// Reason labels why a record was routed to the unprocessed tree.
type Reason string

const (
	ReasonUnmatched     Reason = "unmatched identifiers"
	ReasonUnhandledVR   Reason = "unhandled value type"
	ReasonMalformedDate Reason = "malformed date value"
	ReasonUnwritable    Reason = "unwritable record"
)

// Disposition is the outcome of de-identifying one record.
type Disposition struct {
	Processed bool
	Reason    Reason
	Detail    string
}

func unprocessed(reason Reason, detail string) Disposition {
	return Disposition{Reason: reason, Detail: detail}
}

// Process rewrites identifiers and shifts dates on the dataset in place.
// Processed == false means the record must be copied to the unprocessed
// tree untouched; any in-memory mutations are discarded along with the
// dataset.
func Process(ds *dcm.Dataset, tables lookup.Tables) Disposition {
	patientID := strings.TrimSpace(ds.GetPatientID())
	accession := strings.TrimSpace(ds.GetAccessionNumber())

	person, patientMatched := tables.Persons[patientID]
	imageID, imageMatched := tables.Images[lookup.ImageKey{PatientID: patientID, AccessionNumber: accession}]
	if !patientMatched || !imageMatched {
		return unprocessed(ReasonUnmatched, "Unmatched PatientID or AccessionNumber")
	}

	if err := ds.SetString(tag.PatientID, person.PersonID); err != nil {
		return unprocessed(ReasonUnwritable, fmt.Sprintf("Could not rewrite PatientID: %v", err))
	}
	if err := ds.SetString(tag.AccessionNumber, imageID); err != nil {
		return unprocessed(ReasonUnwritable, fmt.Sprintf("Could not rewrite AccessionNumber: %v", err))
	}

	for _, coordinate := range ShiftTargets {
		elem, ok := ds.Element(coordinate)
		if !ok {
			continue
		}
		// Bytes, numbers and sequences have no string form; a date tag
		// carrying one is routed with the other unhandled types.
		values := dcm.StringValues(elem)
		if values == nil && dcm.HasValue(elem) {
			return unprocessed(ReasonUnhandledVR, fmt.Sprintf("Unhandled VR %s for tag (%04X,%04X)",
				elem.RawValueRepresentation, coordinate.Group, coordinate.Element))
		}
		if !hasContent(values) {
			continue
		}

		var shift func(string, int) (string, error)
		switch CategoryOf(elem.RawValueRepresentation) {
		case CategoryDate:
			shift = dateshift.ShiftDate
		case CategoryDateTime:
			shift = dateshift.ShiftDateTime
		default:
			return unprocessed(ReasonUnhandledVR, fmt.Sprintf("Unhandled VR %s for tag (%04X,%04X)",
				elem.RawValueRepresentation, coordinate.Group, coordinate.Element))
		}

		shifted, err := shiftEach(values, person.DaysShifted, shift)
		if err != nil {
			return unprocessed(ReasonMalformedDate, fmt.Sprintf("Malformed %s value for tag (%04X,%04X)",
				elem.RawValueRepresentation, coordinate.Group, coordinate.Element))
		}
		if err := ds.SetStrings(coordinate, shifted); err != nil {
			return unprocessed(ReasonUnwritable, fmt.Sprintf("Could not rewrite tag (%04X,%04X): %v",
				coordinate.Group, coordinate.Element, err))
		}
	}

	return Disposition{Processed: true}
}

// hasContent reports whether at least one entry carries a value.
func hasContent(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// shiftEach applies shift to every non-empty entry; empty entries are
// kept as they are.
func shiftEach(values []string, days int, shift func(string, int) (string, error)) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			out[i] = v
			continue
		}
		shifted, err := shift(trimmed, days)
		if err != nil {
			return nil, err
		}
		out[i] = shifted
	}
	return out, nil
}

package deid

import "github.com/suyashkumar/dicom/pkg/tag"

// Category classifies the declared value representation of a
// date-bearing element.
type Category int

const (
	CategoryUnknown  Category = iota // any VR this tool does not shift
	CategoryDate                     // DA: YYYYMMDD
	CategoryDateTime                 // DT: YYYYMMDDHHMMSS plus optional suffix
)

// CategoryOf maps a declared VR to its shift category.
func CategoryOf(vr string) Category {
	switch vr {
	case "DA":
		return CategoryDate
	case "DT":
		return CategoryDateTime
	}
	return CategoryUnknown
}

// ShiftTargets are the date and date-time tags whose values are moved by
// the per-patient day offset. The set is fixed; records are routed by
// what they contain, never by modality.
var ShiftTargets = []tag.Tag{
	// Instance, study and series chronology
	{Group: 0x0008, Element: 0x0012}, // InstanceCreationDate
	{Group: 0x0008, Element: 0x0020}, // StudyDate
	{Group: 0x0008, Element: 0x0021}, // SeriesDate
	{Group: 0x0008, Element: 0x0022}, // AcquisitionDate
	{Group: 0x0008, Element: 0x0023}, // ContentDate
	{Group: 0x0008, Element: 0x002A}, // AcquisitionDateTime

	// Patient
	{Group: 0x0010, Element: 0x0030}, // PatientBirthDate

	// Acquisition context
	{Group: 0x0018, Element: 0x1012}, // DateOfSecondaryCapture
	{Group: 0x0018, Element: 0x1078}, // RadiopharmaceuticalStartDateTime
	{Group: 0x0018, Element: 0x1079}, // RadiopharmaceuticalStopDateTime
	{Group: 0x0018, Element: 0x1200}, // DateOfLastCalibration
	{Group: 0x0018, Element: 0x700C}, // DateOfLastDetectorCalibration

	// Study scheduling (retired tags, still common in older archives)
	{Group: 0x0032, Element: 0x1000}, // ScheduledStudyStartDate
	{Group: 0x0032, Element: 0x1010}, // ScheduledStudyStopDate
	{Group: 0x0032, Element: 0x1040}, // StudyArrivalDate
	{Group: 0x0032, Element: 0x1050}, // StudyCompletionDate

	// Visit
	{Group: 0x0038, Element: 0x0020}, // AdmittingDate
	{Group: 0x0038, Element: 0x0030}, // DischargeDate

	// RT structure sets
	{Group: 0x3006, Element: 0x0008}, // StructureSetDate
}

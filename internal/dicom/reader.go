package dicom

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Dataset wraps a DICOM dataset for easier access
type Dataset struct {
	Data     dicom.Dataset
	FilePath string
}

// ReadDicom reads a DICOM file and returns the dataset.
func ReadDicom(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}

	ds, err := dicom.Parse(file, info.Size(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}

	return &Dataset{
		Data:     ds,
		FilePath: path,
	}, nil
}

// ReadBytes parses a DICOM record held in memory.
func ReadBytes(data []byte) (*Dataset, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}
	return &Dataset{Data: ds}, nil
}

// Element returns the element at the given tag coordinate, if present.
func (d *Dataset) Element(t tag.Tag) (*dicom.Element, bool) {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem == nil {
		return nil, false
	}
	return elem, true
}

// GetString returns a string value for a tag, or empty string if not found.
func (d *Dataset) GetString(t tag.Tag) string {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil {
		return ""
	}

	if elem.Value == nil {
		return ""
	}

	value := elem.Value.GetValue()
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case string:
		return v
	}

	return fmt.Sprintf("%v", value)
}

// GetPatientID returns the patient ID.
func (d *Dataset) GetPatientID() string {
	return d.GetString(tag.PatientID)
}

// GetAccessionNumber returns the accession number.
func (d *Dataset) GetAccessionNumber() string {
	return d.GetString(tag.AccessionNumber)
}

// StringValues returns an element's value as a list of strings. A nil
// result means the element does not carry string data.
func StringValues(elem *dicom.Element) []string {
	if elem == nil || elem.Value == nil {
		return nil
	}
	switch v := elem.Value.GetValue().(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// HasValue reports whether an element carries any payload at all.
// Zero-length values count as empty; anything without a string form
// (bytes, numbers, sequences, pixel data) counts as a payload.
func HasValue(elem *dicom.Element) bool {
	if elem == nil || elem.Value == nil {
		return false
	}
	switch v := elem.Value.GetValue().(type) {
	case nil:
		return false
	case []string:
		return len(v) > 0
	case []byte:
		return len(v) > 0
	case []int:
		return len(v) > 0
	}
	return true
}

// RenderValue formats an element's value for display and comparison.
// Multi-valued strings use the DICOM backslash separator; pixel data is
// summarized rather than dumped.
func RenderValue(elem *dicom.Element) string {
	if elem == nil || elem.Value == nil {
		return ""
	}
	switch v := elem.Value.GetValue().(type) {
	case []string:
		return strings.Join(v, `\`)
	case string:
		return v
	case dicom.PixelDataInfo:
		return fmt.Sprintf("(pixel data, %d frames)", len(v.Frames))
	}
	return fmt.Sprintf("%v", elem.Value.GetValue())
}

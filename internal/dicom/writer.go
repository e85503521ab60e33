package dicom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// NewStringElement builds a string-typed element for the given coordinate
// and declared VR.
func NewStringElement(t tag.Tag, vr string, values ...string) (*dicom.Element, error) {
	newValue, err := dicom.NewValue(values)
	if err != nil {
		return nil, fmt.Errorf("could not create value: %w", err)
	}
	return &dicom.Element{
		Tag:                    t,
		ValueRepresentation:    tag.GetVRKind(t, vr),
		RawValueRepresentation: vr,
		ValueLength:            uint32(len(strings.Join(values, `\`))),
		Value:                  newValue,
	}, nil
}

// SetString sets a single string value for a tag in the dataset.
func (d *Dataset) SetString(t tag.Tag, value string) error {
	return d.SetStrings(t, []string{value})
}

// SetStrings sets the value for a tag in the dataset. An existing element
// is replaced in place, keeping its declared VR; a missing element is
// created with the VR from the tag dictionary.
func (d *Dataset) SetStrings(t tag.Tag, values []string) error {
	if elem, ok := d.Element(t); ok {
		newElem, err := NewStringElement(t, elem.RawValueRepresentation, values...)
		if err != nil {
			return err
		}
		for i, e := range d.Data.Elements {
			if e.Tag == t {
				d.Data.Elements[i] = newElem
				break
			}
		}
		return nil
	}

	info, err := tag.Find(t)
	if err != nil {
		return fmt.Errorf("could not look up tag (%04X,%04X): %w", t.Group, t.Element, err)
	}
	newElem, err := NewStringElement(t, info.VR, values...)
	if err != nil {
		return err
	}
	d.Data.Elements = append(d.Data.Elements, newElem)
	return nil
}

// Bytes serializes the dataset to a complete DICOM stream. The record is
// materialized in memory so callers can write it to disk in one step and
// never leave a partially written file behind.
func (d *Dataset) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	// Write DICOM with relaxed verification (many real-world DICOM files
	// don't strictly follow VR specifications)
	if err := dicom.Write(&buf, d.Data,
		dicom.SkipVRVerification(),
		dicom.SkipValueTypeVerification(),
		dicom.DefaultMissingTransferSyntax(),
	); err != nil {
		return nil, fmt.Errorf("could not write DICOM: %w", err)
	}
	return buf.Bytes(), nil
}

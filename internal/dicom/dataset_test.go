package dicom

import (
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func mustStringElement(t *testing.T, tg tag.Tag, vr string, values ...string) *dicom.Element {
	t.Helper()
	elem, err := NewStringElement(tg, vr, values...)
	if err != nil {
		t.Fatalf("could not build element (%04X,%04X): %v", tg.Group, tg.Element, err)
	}
	return elem
}

func newTestDataset(elems ...*dicom.Element) *Dataset {
	return &Dataset{Data: dicom.Dataset{Elements: elems}}
}

func TestGetString(t *testing.T) {
	ds := newTestDataset(
		mustStringElement(t, tag.PatientID, "LO", "P1"),
		mustStringElement(t, tag.ImageType, "CS", "ORIGINAL", "PRIMARY"),
	)

	if got := ds.GetString(tag.PatientID); got != "P1" {
		t.Errorf("GetString(PatientID) = %q, want %q", got, "P1")
	}
	if got := ds.GetString(tag.ImageType); got != "ORIGINAL" {
		t.Errorf("GetString(ImageType) = %q, want first value %q", got, "ORIGINAL")
	}
	if got := ds.GetString(tag.StudyDate); got != "" {
		t.Errorf("GetString(StudyDate) = %q, want empty for missing tag", got)
	}
}

func TestElement(t *testing.T) {
	ds := newTestDataset(mustStringElement(t, tag.StudyDate, "DA", "20230101"))

	elem, ok := ds.Element(tag.StudyDate)
	if !ok {
		t.Fatal("Element(StudyDate) not found")
	}
	if elem.RawValueRepresentation != "DA" {
		t.Errorf("VR = %q, want %q", elem.RawValueRepresentation, "DA")
	}
	if _, ok := ds.Element(tag.PatientID); ok {
		t.Error("Element(PatientID) reported a missing tag as present")
	}
}

func TestStringValues(t *testing.T) {
	elem := mustStringElement(t, tag.ImageType, "CS", "ORIGINAL", "PRIMARY")
	got := StringValues(elem)
	if len(got) != 2 || got[0] != "ORIGINAL" || got[1] != "PRIMARY" {
		t.Errorf("StringValues = %v, want [ORIGINAL PRIMARY]", got)
	}
	if StringValues(nil) != nil {
		t.Error("StringValues(nil) != nil")
	}
}

func mustBytesElement(t *testing.T, tg tag.Tag, data []byte) *dicom.Element {
	t.Helper()
	value, err := dicom.NewValue(data)
	if err != nil {
		t.Fatalf("could not build byte value: %v", err)
	}
	return &dicom.Element{
		Tag:                    tg,
		ValueRepresentation:    tag.GetVRKind(tg, "UN"),
		RawValueRepresentation: "UN",
		ValueLength:            uint32(len(data)),
		Value:                  value,
	}
}

func TestHasValue(t *testing.T) {
	if !HasValue(mustStringElement(t, tag.PatientID, "LO", "P1")) {
		t.Error("HasValue(string element) = false")
	}
	if HasValue(mustStringElement(t, tag.ImageType, "CS")) {
		t.Error("HasValue(element with no values) = true")
	}
	if !HasValue(mustBytesElement(t, tag.PatientBirthDate, []byte("19800515"))) {
		t.Error("HasValue(byte element) = false")
	}
	if HasValue(mustBytesElement(t, tag.PatientBirthDate, []byte{})) {
		t.Error("HasValue(zero-length byte element) = true")
	}
	if HasValue(nil) {
		t.Error("HasValue(nil) = true")
	}
}

func TestSetStringReplace(t *testing.T) {
	ds := newTestDataset(mustStringElement(t, tag.StudyDate, "DA", "20230101"))

	if err := ds.SetString(tag.StudyDate, "20230111"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got := ds.GetString(tag.StudyDate); got != "20230111" {
		t.Errorf("value after replace = %q, want %q", got, "20230111")
	}
	elem, _ := ds.Element(tag.StudyDate)
	if elem.RawValueRepresentation != "DA" {
		t.Errorf("VR after replace = %q, want %q", elem.RawValueRepresentation, "DA")
	}
	if len(ds.Data.Elements) != 1 {
		t.Errorf("element count = %d, want 1", len(ds.Data.Elements))
	}
}

func TestSetStringInsert(t *testing.T) {
	ds := newTestDataset()

	if err := ds.SetString(tag.PatientID, "SUBJ01"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got := ds.GetPatientID(); got != "SUBJ01" {
		t.Errorf("GetPatientID after insert = %q, want %q", got, "SUBJ01")
	}
	elem, ok := ds.Element(tag.PatientID)
	if !ok {
		t.Fatal("inserted element not found")
	}
	if elem.RawValueRepresentation != "LO" {
		t.Errorf("inserted VR = %q, want dictionary VR %q", elem.RawValueRepresentation, "LO")
	}
}

func TestSetStringsMultiValue(t *testing.T) {
	ds := newTestDataset(mustStringElement(t, tag.StudyDate, "DA", "20230101"))

	if err := ds.SetStrings(tag.StudyDate, []string{"20230111", "20230112"}); err != nil {
		t.Fatalf("SetStrings returned error: %v", err)
	}
	elem, _ := ds.Element(tag.StudyDate)
	got := StringValues(elem)
	if len(got) != 2 || got[0] != "20230111" || got[1] != "20230112" {
		t.Errorf("values after SetStrings = %v", got)
	}
}

func TestRenderValue(t *testing.T) {
	single := mustStringElement(t, tag.PatientID, "LO", "P1")
	multi := mustStringElement(t, tag.ImageType, "CS", "ORIGINAL", "PRIMARY")

	if got := RenderValue(single); got != "P1" {
		t.Errorf("RenderValue(single) = %q, want %q", got, "P1")
	}
	if got := RenderValue(multi); got != `ORIGINAL\PRIMARY` {
		t.Errorf("RenderValue(multi) = %q, want %q", got, `ORIGINAL\PRIMARY`)
	}
	if got := RenderValue(nil); got != "" {
		t.Errorf("RenderValue(nil) = %q, want empty", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	ds := newTestDataset(
		mustStringElement(t, tag.MediaStorageSOPClassUID, "UI", "1.2.840.10008.5.1.4.1.1.7"),
		mustStringElement(t, tag.MediaStorageSOPInstanceUID, "UI", "1.2.3.4.5.6.7"),
		mustStringElement(t, tag.TransferSyntaxUID, "UI", "1.2.840.10008.1.2.1"),
		mustStringElement(t, tag.StudyDate, "DA", "20230101"),
		mustStringElement(t, tag.AcquisitionDateTime, "DT", "20230101120000.123456"),
		mustStringElement(t, tag.AccessionNumber, "SH", "A1"),
		mustStringElement(t, tag.PatientID, "LO", "P1"),
	)

	data, err := ds.Bytes()
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	parsed, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes returned error: %v", err)
	}

	checks := []struct {
		coordinate tag.Tag
		vr         string
		want       string
	}{
		{tag.StudyDate, "DA", "20230101"},
		{tag.AcquisitionDateTime, "DT", "20230101120000.123456"},
		{tag.AccessionNumber, "SH", "A1"},
		{tag.PatientID, "LO", "P1"},
	}
	for _, c := range checks {
		elem, ok := parsed.Element(c.coordinate)
		if !ok {
			t.Fatalf("tag (%04X,%04X) missing after round trip", c.coordinate.Group, c.coordinate.Element)
		}
		if elem.RawValueRepresentation != c.vr {
			t.Errorf("tag (%04X,%04X) VR = %q, want %q", c.coordinate.Group, c.coordinate.Element, elem.RawValueRepresentation, c.vr)
		}
		if got := parsed.GetString(c.coordinate); got != c.want {
			t.Errorf("tag (%04X,%04X) value = %q, want %q", c.coordinate.Group, c.coordinate.Element, got, c.want)
		}
	}
}

// Package compare reports tag-level differences between two DICOM
// records, for spot-checking de-identified output against its input.
package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/suyashkumar/dicom/pkg/tag"

	dcm "dicom-deidentifier/internal/dicom"
)

// MissingValue marks a tag present in only one of the two records.
const MissingValue = "MISSING TAG"

// Row is one differing tag.
type Row struct {
	Tag   string // "(GGGG,EEEE)"
	Name  string // dictionary name, or the coordinate again when unknown
	File1 string
	File2 string
}

// Diff compares every tag that appears in either record and returns the
// differing ones in ascending tag order.
func Diff(a, b *dcm.Dataset) []Row {
	coordinates := make(map[tag.Tag]struct{})
	for _, elem := range a.Data.Elements {
		coordinates[elem.Tag] = struct{}{}
	}
	for _, elem := range b.Data.Elements {
		coordinates[elem.Tag] = struct{}{}
	}

	ordered := make([]tag.Tag, 0, len(coordinates))
	for coordinate := range coordinates {
		ordered = append(ordered, coordinate)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Group != ordered[j].Group {
			return ordered[i].Group < ordered[j].Group
		}
		return ordered[i].Element < ordered[j].Element
	})

	var rows []Row
	for _, coordinate := range ordered {
		value1 := renderOrMissing(a, coordinate)
		value2 := renderOrMissing(b, coordinate)
		if value1 == value2 {
			continue
		}
		rows = append(rows, Row{
			Tag:   fmt.Sprintf("(%04X,%04X)", coordinate.Group, coordinate.Element),
			Name:  tagName(coordinate),
			File1: value1,
			File2: value2,
		})
	}
	return rows
}

func renderOrMissing(ds *dcm.Dataset, coordinate tag.Tag) string {
	elem, ok := ds.Element(coordinate)
	if !ok {
		return MissingValue
	}
	return dcm.RenderValue(elem)
}

// tagName resolves the dictionary name of a coordinate, falling back to
// the coordinate itself for private or retired tags.
func tagName(coordinate tag.Tag) string {
	if info, err := tag.Find(coordinate); err == nil && info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("(%04X,%04X)", coordinate.Group, coordinate.Element)
}

// WriteCSV writes the differing tags as CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Tag", "Tag Name", "File1 Value", "File2 Value"}); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Tag, row.Name, row.File1, row.File2}); err != nil {
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

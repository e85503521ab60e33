package dicom

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Subfolders lists the immediate subdirectories of the filesystem root,
// sorted by name. Files at the root itself are ignored; every record is
// expected to live under a subject subfolder.
func Subfolders(fsys billy.Filesystem) ([]string, error) {
	entries, err := fsys.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("could not list root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FindFiles walks root recursively and returns every file whose name ends
// with ext, ignoring case. Paths are relative to the filesystem root and
// sorted for a deterministic processing order.
func FindFiles(fsys billy.Filesystem, root, ext string) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}
		if info.IsDir() {
			return nil
		}
		if matchExtension(info.Name(), ext) {
			files = append(files, path)
		}
		return nil
	}

	if err := util.Walk(fsys, root, walkFn); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func matchExtension(name, ext string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext))
}

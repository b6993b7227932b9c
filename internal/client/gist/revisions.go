package gist

import (
	"sort"

	"github.com/iudanet/novelsync/pkg/api"
)

// FileStatus is the change of one file between two revisions.
type FileStatus string

const (
	FileAdded     FileStatus = "added"
	FileRemoved   FileStatus = "removed"
	FileModified  FileStatus = "modified"
	FileUnchanged FileStatus = "unchanged"
)

// FileDiff describes how a file changed between two revisions.
type FileDiff struct {
	Name    string
	Status  FileStatus
	OldSize int
	NewSize int
	// Assumed is set when truncation prevented a content comparison.
	Assumed bool
}

// DiffRevisions compares two revisions of a gist file by file.
// Files present in both are compared by size and then by content; when
// either side is truncated and sizes match, the file is assumed modified.
func DiffRevisions(older, newer *api.Gist) []FileDiff {
	oldFiles := map[string]*api.GistFile{}
	newFiles := map[string]*api.GistFile{}
	if older != nil && older.Files != nil {
		oldFiles = older.Files
	}
	if newer != nil && newer.Files != nil {
		newFiles = newer.Files
	}

	var diffs []FileDiff
	for name, nf := range newFiles {
		of, ok := oldFiles[name]
		if !ok {
			diffs = append(diffs, FileDiff{Name: name, Status: FileAdded, NewSize: size(nf)})
			continue
		}
		diffs = append(diffs, compareFiles(name, of, nf))
	}
	for name, of := range oldFiles {
		if _, ok := newFiles[name]; !ok {
			diffs = append(diffs, FileDiff{Name: name, Status: FileRemoved, OldSize: size(of)})
		}
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Name < diffs[j].Name })
	return diffs
}

func compareFiles(name string, of, nf *api.GistFile) FileDiff {
	d := FileDiff{Name: name, OldSize: size(of), NewSize: size(nf)}
	switch {
	case d.OldSize != d.NewSize:
		d.Status = FileModified
	case !of.HasContent() || !nf.HasContent():
		d.Status = FileModified
		d.Assumed = true
	case *of.Content != *nf.Content:
		d.Status = FileModified
	default:
		d.Status = FileUnchanged
	}
	return d
}

func size(f *api.GistFile) int {
	if f == nil {
		return 0
	}
	return f.Size
}

// Changed filters out unchanged files.
func Changed(diffs []FileDiff) []FileDiff {
	out := make([]FileDiff, 0, len(diffs))
	for _, d := range diffs {
		if d.Status != FileUnchanged {
			out = append(out, d)
		}
	}
	return out
}

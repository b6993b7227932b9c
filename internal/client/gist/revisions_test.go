package gist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/novelsync/pkg/api"
)

func file(content string) *api.GistFile {
	return &api.GistFile{Content: &content, Size: len(content)}
}

func TestDiffRevisions(t *testing.T) {
	older := &api.Gist{Files: map[string]*api.GistFile{
		"a.json": file("one"),
		"b.json": file("two"),
		"c.json": file("abc"),
		"d.json": {Size: 4, Truncated: true},
	}}
	newer := &api.Gist{Files: map[string]*api.GistFile{
		"a.json": file("one"),
		"c.json": file("xyz"),
		"d.json": file("four"),
		"e.json": file("new"),
	}}

	diffs := DiffRevisions(older, newer)
	assert.Equal(t, []FileDiff{
		{Name: "a.json", Status: FileUnchanged, OldSize: 3, NewSize: 3},
		{Name: "b.json", Status: FileRemoved, OldSize: 3},
		{Name: "c.json", Status: FileModified, OldSize: 3, NewSize: 3},
		{Name: "d.json", Status: FileModified, OldSize: 4, NewSize: 4, Assumed: true},
		{Name: "e.json", Status: FileAdded, NewSize: 3},
	}, diffs)

	assert.Len(t, Changed(diffs), 4)
}

func TestDiffRevisions_Nil(t *testing.T) {
	diffs := DiffRevisions(nil, &api.Gist{Files: map[string]*api.GistFile{"a.json": file("x")}})
	assert.Equal(t, []FileDiff{{Name: "a.json", Status: FileAdded, NewSize: 1}}, diffs)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/gists", "/gists"},
		{"/gists/aa5a315d61ae9438b18d", "/gists/aa5a31***"},
		{"/gists/aa5a315d61ae9438b18d/commits", "/gists/aa5a31***/commits"},
		{"/gists/aa5a315d61ae9438b18d/57a7f021a713b1c5a6a199b54cc514735d2d462f", "/gists/aa5a31***/57a7f0***"},
		{"/reader/aa5a315d61ae9438b18d/raw/57a7f021a7/settings.json", "/reader/aa5a31***/raw/57a7f0***/settings.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizePath(tt.path), tt.path)
	}
}

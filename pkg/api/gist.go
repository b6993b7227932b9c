package api

import (
	"encoding/json"
	"time"
)

// Gist is the remote blob as returned by GET /gists/{id}.
type Gist struct {
	UpdatedAt   time.Time            `json:"updated_at"`
	CreatedAt   time.Time            `json:"created_at"`
	Files       map[string]*GistFile `json:"files"`
	ID          string               `json:"id"`
	Description string               `json:"description"`
	HTMLURL     string               `json:"html_url,omitempty"`
	History     []Revision           `json:"history,omitempty"`
	Public      bool                 `json:"public"`
}

// GistFile is a single file inside a gist.
// Content is nil when the API omitted it (Truncated is then usually true).
type GistFile struct {
	Content   *string `json:"content,omitempty"`
	Filename  string  `json:"filename"`
	Type      string  `json:"type,omitempty"`
	RawURL    string  `json:"raw_url,omitempty"`
	Size      int     `json:"size"`
	Truncated bool    `json:"truncated"`
}

// HasContent reports whether the API returned the file content inline.
func (f *GistFile) HasContent() bool {
	return f != nil && f.Content != nil && !f.Truncated
}

// FileChange is one entry of the "files" object of a create/update request.
// It is either an upsert carrying content or a delete marker.
type FileChange struct {
	content string
	delete  bool
}

// Upsert creates or overwrites a file with the given content.
func Upsert(content string) FileChange {
	return FileChange{content: content}
}

// Delete removes the file from the gist.
func Delete() FileChange {
	return FileChange{delete: true}
}

// IsDelete reports whether the change removes the file.
func (c FileChange) IsDelete() bool {
	return c.delete
}

// Content returns the upserted content; empty for delete markers.
func (c FileChange) Content() string {
	return c.content
}

// MarshalJSON encodes delete markers as null and upserts as {"content": ...},
// which is how the gist API distinguishes the two.
func (c FileChange) MarshalJSON() ([]byte, error) {
	if c.delete {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Content string `json:"content"`
	}{Content: c.content})
}

// UnmarshalJSON is the inverse of MarshalJSON. Used by test servers.
func (c *FileChange) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Delete()
		return nil
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*c = Upsert(body.Content)
	return nil
}

// GistRequest is the body of POST /gists and PATCH /gists/{id}.
type GistRequest struct {
	Files       map[string]FileChange `json:"files"`
	Public      *bool                 `json:"public,omitempty"`
	Description string                `json:"description,omitempty"`
}

// Revision is one entry of GET /gists/{id}/commits.
type Revision struct {
	CommittedAt  time.Time    `json:"committed_at"`
	Version      string       `json:"version"`
	URL          string       `json:"url,omitempty"`
	ChangeStatus ChangeStatus `json:"change_status"`
}

// ChangeStatus summarizes line changes of a revision.
type ChangeStatus struct {
	Total     int `json:"total"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// ErrorResponse is the error body returned by the GitHub API.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

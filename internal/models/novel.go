package models

import "time"

// Novel is one translated novel of the library.
// Chapter content is loaded lazily, so a Novel may carry chapters without content.
type Novel struct {
	CreatedAt   time.Time `json:"createdAt"`
	LastEdited  time.Time `json:"lastEdited"` // LastEdited время последнего локального изменения
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	Language    string    `json:"language,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Volumes     []Volume  `json:"volumes"`
}

// Volume groups chapters of a novel.
type Volume struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter is a single chapter.
//
// Content == nil means the content is not present in this snapshot (not loaded);
// a non-nil empty slice means the chapter really has no paragraphs.
// JSON keeps the distinction: null vs [].
type Chapter struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	OriginalURL string      `json:"originalUrl,omitempty"`
	Content     []Paragraph `json:"content"`
}

// HasContent reports whether the chapter carries its paragraphs.
func (c *Chapter) HasContent() bool {
	return c.Content != nil
}

// Paragraph is a source paragraph with its translations.
type Paragraph struct {
	ID                string        `json:"id"`
	Text              string        `json:"text"`
	Translations      []Translation `json:"translations,omitempty"`
	SelectedVariation int           `json:"selectedVariation,omitempty"`
}

// Translation is one AI translation of a paragraph.
type Translation struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	ModelID   string    `json:"modelId,omitempty"`
}

// ChapterCount returns the total number of chapters across volumes.
func (n *Novel) ChapterCount() int {
	count := 0
	for _, v := range n.Volumes {
		count += len(v.Chapters)
	}
	return count
}

// StripContent returns a copy of the novel with every chapter content removed.
// The original novel is not modified.
func (n *Novel) StripContent() *Novel {
	out := *n
	out.Volumes = make([]Volume, len(n.Volumes))
	for i, v := range n.Volumes {
		vol := v
		vol.Chapters = make([]Chapter, len(v.Chapters))
		for j, ch := range v.Chapters {
			ch.Content = nil
			vol.Chapters[j] = ch
		}
		out.Volumes[i] = vol
	}
	return &out
}

// Clone creates a deep copy of the novel
func (n *Novel) Clone() *Novel {
	out := *n
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	if n.Volumes != nil {
		out.Volumes = make([]Volume, len(n.Volumes))
	}
	for i, v := range n.Volumes {
		vol := Volume{ID: v.ID, Title: v.Title}
		if v.Chapters != nil {
			vol.Chapters = make([]Chapter, len(v.Chapters))
		}
		for j, ch := range v.Chapters {
			c := ch
			c.Content = CloneContent(ch.Content)
			vol.Chapters[j] = c
		}
		out.Volumes[i] = vol
	}
	return &out
}

// CloneContent deep-copies chapter content, keeping nil as nil.
func CloneContent(content []Paragraph) []Paragraph {
	if content == nil {
		return nil
	}
	out := make([]Paragraph, len(content))
	for i, p := range content {
		if p.Translations != nil {
			p.Translations = append([]Translation(nil), p.Translations...)
		}
		out[i] = p
	}
	return out
}

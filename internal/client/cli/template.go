package cli

const statusTemplate = `
=== Sync Status ===

Account:    {{.Account}}
Remote:     {{if .RemoteID}}{{.RemoteID}}{{else}}not created yet{{end}}
Last sync:  {{.LastSync}}
Interval:   {{.Interval}}
{{- if .State }}
State:      {{.State}}
{{- end}}

Library:    {{.Novels}} novel(s), {{.Chapters}} chapter(s)
Content:    {{.StoredChapters}} chapter(s) stored, {{.ContentSize}}
AI models:  {{.Models}}
Covers:     {{.Covers}}
Settings:   {{if .HasSettings}}present{{else}}not set{{end}}
`

const novelLineTemplate = `{{printf "%-36s" .ID}}  {{.Title}}
{{"    "}}{{.Chapters}} chapter(s), {{.WithContent}} with content, edited {{.Edited}}
`

const diffTemplate = `
=== Changes in {{.Version}} ({{.When}}) ===
{{range .Files}}
  {{printf "%-9s" .Status}} {{.Name}}{{if .Size}}  {{.Size}}{{end}}{{if .Assumed}} (assumed, content truncated){{end}}
{{- else}}
  no file changes
{{- end}}
`

package cli

import (
	"fmt"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// render executes a text template from template.go into the output.
func (c *Cli) render(name, text string, data any) error {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// shortVersion shortens a revision hash for display.
func shortVersion(version string) string {
	if len(version) > 8 {
		return version[:8]
	}
	return version
}

// when formats t relative to now, e.g. "3 hours ago (2024-01-02 15:04)".
func when(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (%s)", humanize.RelTime(t, now, "ago", "from now"), t.Local().Format("2006-01-02 15:04"))
}

// sizeDelta formats a file size change, e.g. "1.2 kB -> 3.4 kB".
func sizeDelta(oldSize, newSize int) string {
	switch {
	case oldSize == 0 && newSize == 0:
		return ""
	case oldSize == 0:
		return humanize.Bytes(uint64(newSize))
	case newSize == 0:
		return humanize.Bytes(uint64(oldSize))
	case oldSize == newSize:
		return humanize.Bytes(uint64(newSize))
	default:
		return fmt.Sprintf("%s -> %s", humanize.Bytes(uint64(oldSize)), humanize.Bytes(uint64(newSize)))
	}
}

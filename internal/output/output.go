package output

import (
	"fmt"
	"io"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Enumerating(courseID string) {
	fmt.Fprintf(f.w, "🔎 Enumerating discussions for course %s...\n", courseID)
}

func (f *Formatter) DiscussionFound(id string) {
	fmt.Fprintf(f.w, "  found discussion: %s\n", id)
}

func (f *Formatter) EnumerationDone(count int) {
	fmt.Fprintf(f.w, "📋 %d discussion(s) found\n", count)
}

func (f *Formatter) DiscussionDetail(id, status, recordedAt string, durationSec int, topic, group string) {
	if topic == "" {
		topic = "(no topic)"
	}
	if group == "" {
		group = "(no group)"
	}
	fmt.Fprintf(f.w, "  %s  %s  %s  %s  %s  %s\n",
		recordedAt, formatSeconds(durationSec), status, id, topic, group)
}

func (f *Formatter) TranscriptSkipped(id string, reason error) {
	fmt.Fprintf(f.w, "⚠️  Skipping discussion %s: %v\n", id, reason)
}

func (f *Formatter) TranscriptEmpty(id string) {
	fmt.Fprintf(f.w, "ℹ️  Discussion %s has no transcript text\n", id)
}

func (f *Formatter) TranscriptSaved(path string) {
	fmt.Fprintf(f.w, "✅ Transcript saved: %s\n", path)
}

func (f *Formatter) FetchComplete(saved, skipped int, dir string) {
	fmt.Fprintf(f.w, "\n📁 Done: %d transcript(s) saved, %d skipped (%s)\n", saved, skipped, dir)
}

func (f *Formatter) BackupStarted(boardID string) {
	fmt.Fprintf(f.w, "🗂  Backing up board %s...\n", boardID)
}

func (f *Formatter) BackupComplete(boardName, path string, itemCount int) {
	fmt.Fprintf(f.w, "✅ Backup of %q saved: %s (%d items)\n", boardName, path, itemCount)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) TranscriptListHeader(dir string) {
	fmt.Fprintf(f.w, "📁 Transcripts in %s:\n\n", dir)
}

func (f *Formatter) TranscriptListItem(name string) {
	fmt.Fprintf(f.w, "  %s\n", name)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatSeconds(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

package usecases

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/discussion"
)

// Exporter writes one transcript text file per discussion.
type Exporter struct{}

// Execute writes the transcript's texts, newline-joined, to a file in dir
// named from the discussion's metadata. The file is opened in append mode
// so re-runs add to an existing file rather than truncating it. Returns the
// file path.
func (e *Exporter) Execute(dir string, d discussion.Discussion, tr discussion.Transcript) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(d))

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening transcript file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(strings.Join(tr.Texts, "\n") + "\n"); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}

	return path, nil
}

// Filename builds the transcript file name:
// YYYYMMDD_HHMMSS(HH_MM_SS)_<id>_<topic>_<group>.asr.txt
// using the discussion's display-timezone timestamp and its duration as a
// zero-padded hours_minutes_seconds block.
func Filename(d discussion.Discussion) string {
	topic := "no_topic"
	if d.Topic != "" {
		// Slashes would split the name into path segments.
		topic = strings.ReplaceAll(d.Topic, "/", "／")
	}
	group := "no_group"
	if d.GroupName != "" {
		group = d.GroupName
	}

	return fmt.Sprintf("%s(%s)_%s_%s_%s.asr.txt",
		d.RecordedAt.Format("20060102_150405"),
		formatSeconds(d.DurationSec),
		d.ID,
		topic,
		group,
	)
}

func formatSeconds(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d_%02d_%02d", h, m, s)
}

package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/hylable"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/output"
)

func NewFetchCmd(deps *Dependencies) *cobra.Command {
	var course string
	var max int
	var recordingOnly bool
	var timeoutSec int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download discussion transcripts for a course",
		Long:  "Enumerate all discussions of a course, download each one's speech-recognition transcript, and write one text file per discussion.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if course != "" {
				deps.Config.CourseID = course
			}
			if timeoutSec > 0 {
				deps.App.Poller.Timeout = time.Duration(timeoutSec) * time.Second
			}
			if err := deps.Config.ValidateFetch(); err != nil {
				return err
			}

			courseID := deps.Config.CourseID
			dir := deps.Config.TranscriptDir()

			deps.App.Poller.OnFound = func(d hylable.Discussion) {
				formatter.DiscussionFound(d.ID)
			}

			formatter.Enumerating(courseID)

			var ids []string
			if max > 0 {
				// Bounded collection: stop as soon as enough unique
				// discussions have been seen.
				collected, err := deps.App.Poller.CollectIDs(courseID, max, recordingOnly)
				if err != nil {
					return err
				}
				ids = collected
			} else {
				discussions, err := deps.App.Poller.EnumerateAll(courseID)
				if err != nil {
					return err
				}
				for _, d := range discussions {
					formatter.DiscussionDetail(d.ID, d.Status,
						d.RecordedAt.Format("2006-01-02 15:04:05 MST"),
						d.DurationSec, d.Topic, d.GroupName)
					ids = append(ids, d.ID)
				}
			}
			formatter.EnumerationDone(len(ids))

			saved, skipped := 0, 0
			for _, id := range ids {
				detail, tr, err := deps.App.Transcripts.Execute(id)
				if !tr.Available {
					formatter.TranscriptSkipped(id, err)
					skipped++
					continue
				}
				if len(tr.Texts) == 0 {
					formatter.TranscriptEmpty(id)
					continue
				}

				path, err := deps.App.Exporter.Execute(dir, detail, tr)
				if err != nil {
					return err
				}
				formatter.TranscriptSaved(path)
				saved++
			}

			formatter.FetchComplete(saved, skipped, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&course, "course", "c", "", "Course ID (overrides config)")
	cmd.Flags().IntVarP(&max, "max", "m", 0, "Stop after this many unique discussions (0 = all)")
	cmd.Flags().BoolVar(&recordingOnly, "recording-only", false, "Only collect discussions that are still recording (with --max)")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Polling timeout in seconds (overrides config)")

	return cmd
}

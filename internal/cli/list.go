package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var course string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List downloaded transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if course != "" {
				deps.Config.CourseID = course
			}
			dir := deps.Config.TranscriptDir()

			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					formatter.Info("No transcripts found")
					return nil
				}
				return err
			}

			var names []string
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".asr.txt") {
					names = append(names, e.Name())
				}
			}

			if len(names) == 0 {
				formatter.Info("No transcripts found")
				return nil
			}

			// Names start with the recording timestamp, so a reverse name
			// sort is newest-first.
			sort.Sort(sort.Reverse(sort.StringSlice(names)))

			formatter.TranscriptListHeader(dir)
			for _, name := range names {
				formatter.TranscriptListItem(name)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&course, "course", "c", "", "Course ID (overrides config)")

	return cmd
}

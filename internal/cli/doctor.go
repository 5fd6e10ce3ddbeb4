package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if deps.Config.HylableAPIKey != "" {
				f.SetupCheck("Hylable API key", true, "configured")
			} else {
				f.SetupCheck("Hylable API key", false, "not set. Set HYLABLE_API_KEY or add to config")
				ok = false
			}

			if deps.Config.CourseID != "" {
				f.SetupCheck("Course ID", true, deps.Config.CourseID)
			} else {
				f.SetupCheck("Course ID", false, "not set. Pass --course to fetch, or set HYLABLE_COURSE_ID")
			}

			if _, err := time.LoadLocation(deps.Config.DisplayTimezone); err != nil {
				f.SetupCheck("Display timezone", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Display timezone", true, deps.Config.DisplayTimezone)
			}

			if deps.Config.MiroAccessToken != "" {
				f.SetupCheck("Miro access token", true, "configured")
			} else {
				f.SetupCheck("Miro access token", false, "not set. Set MIRO_ACCESS_TOKEN or add to config")
				ok = false
			}

			if deps.Config.MiroBoardID != "" {
				f.SetupCheck("Miro board ID", true, deps.Config.MiroBoardID)
			} else {
				f.SetupCheck("Miro board ID", false, "not set. Pass --board to backup, or set MIRO_BOARD_ID")
			}

			f.SetupCheck("Backup file", true, deps.Config.MiroBackupPath)

			if ok {
				f.Success("\nConfiguration looks good.")
			} else {
				f.Warning("\nSome configuration is missing.")
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ShigeoUeda/hylable-discussion-backup/config"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/app"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hylable-backup",
		Short: "Download discussion transcripts and back up whiteboards",
		Long:  "A CLI tool that downloads speech-recognition transcripts of Hylable course discussions and backs up Miro boards to local JSON files.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewFetchCmd(deps))
	rootCmd.AddCommand(NewBackupCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

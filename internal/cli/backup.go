package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/output"
)

func NewBackupCmd(deps *Dependencies) *cobra.Command {
	var board string
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up a Miro board to a JSON file",
		Long:  "Fetch a board's metadata and every item on it, and write the whole board as a single pretty-printed JSON file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if board != "" {
				deps.Config.MiroBoardID = board
			}
			if out != "" {
				deps.Config.MiroBackupPath = out
			}
			if err := deps.Config.ValidateBackup(); err != nil {
				return err
			}

			boardID := deps.Config.MiroBoardID
			outputPath := deps.Config.MiroBackupPath

			formatter.BackupStarted(boardID)

			result, err := deps.App.Backup.Execute(boardID, outputPath)
			if err != nil {
				return err
			}

			formatter.BackupComplete(result.Metadata.BoardName, outputPath, result.Metadata.ItemCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&board, "board", "b", "", "Board ID (overrides config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Backup file path (overrides config)")

	return cmd
}

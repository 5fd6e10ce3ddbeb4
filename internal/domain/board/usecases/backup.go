package usecases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/board"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/miro"
)

// Backup fetches a whole board and writes it as one JSON file. Any API
// failure aborts the run; there is no partial backup.
type Backup struct {
	Client *miro.Client
}

// Execute fetches the board metadata and every item, assembles the backup
// document, and writes it pretty-printed to outputPath.
func (b *Backup) Execute(boardID, outputPath string) (*board.Backup, error) {
	boardDoc, err := b.Client.GetBoard(boardID)
	if err != nil {
		return nil, err
	}

	items, err := b.Client.ListItems(boardID)
	if err != nil {
		return nil, err
	}

	backup := &board.Backup{
		Board: boardDoc,
		Items: items,
		Metadata: board.Metadata{
			BackupID:   uuid.NewString(),
			BackupDate: time.Now(),
			ItemCount:  len(items),
			BoardName:  board.Name(boardDoc),
		},
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Board content is frequently non-ASCII; keep it readable in the file.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(backup); err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing backup file: %w", err)
	}

	return backup, nil
}
